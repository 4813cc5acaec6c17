package domain

import "time"

// ItemStatus enumerates lifecycle states for inventory items. The literal
// strings are kept for wire compatibility with existing clients.
type ItemStatus string

const (
	ItemStatusEnBodega   ItemStatus = "En Bodega"
	ItemStatusAsignado   ItemStatus = "Asignado a Tecnico"
	ItemStatusEnComercio ItemStatus = "En Comercio"
	// Pending return carries two labels: technicians submit "Reversa lista",
	// admins "En Reversa". Both are stored as received.
	ItemStatusReversaLista ItemStatus = "Reversa lista"
	ItemStatusEnReversa    ItemStatus = "En Reversa"
	ItemStatusReversado    ItemStatus = "Reversado"
)

// Valid reports whether the status is a member of the closed set.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusEnBodega, ItemStatusAsignado, ItemStatusEnComercio,
		ItemStatusReversaLista, ItemStatusEnReversa, ItemStatusReversado:
		return true
	}
	return false
}

// RequiresTerminal reports whether a merchant terminal identifier must
// accompany the status. Only deployed items carry a terminal reference.
func (s ItemStatus) RequiresTerminal() bool {
	return s == ItemStatusEnComercio
}

// InventoryItem is a physical, serial-numbered unit tracked through its
// lifecycle. AssignedToID and TerminalComercio are nullable; the terminal is
// only meaningful while the item is deployed at a merchant.
type InventoryItem struct {
	ID               int64
	SN               string
	ItemCodeID       int64
	TipoServicio     string
	EstadoActual     ItemStatus
	AssignedToID     *int64
	TerminalComercio *string
	FechaIngreso     time.Time
}

// AssignedTo reports whether the item is assigned to the given user.
func (i *InventoryItem) AssignedTo(userID int64) bool {
	return i.AssignedToID != nil && *i.AssignedToID == userID
}

// InventoryRecord is the composite read model: the item joined with its
// catalog entry and, when assigned, its technician. A nil Assignee means
// unassigned, never a missing row.
type InventoryRecord struct {
	Item     InventoryItem
	ItemCode ItemCode
	Assignee *User
}
