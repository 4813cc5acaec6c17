package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// CreateItemRequest payload. Field names match the legacy wire format.
type CreateItemRequest struct {
	SN               string  `json:"sn"`
	ItemCodeID       int64   `json:"item_code_id"`
	TipoServicio     string  `json:"tipo_servicio"`
	EstadoActual     string  `json:"estado_actual"`
	AsignadoAID      *int64  `json:"asignado_a_id"`
	TerminalComercio *string `json:"terminal_comercio"`
}

// UpdateItemRequest payload for full updates.
type UpdateItemRequest struct {
	SN               string  `json:"sn"`
	ItemCodeID       int64   `json:"item_code_id"`
	TipoServicio     string  `json:"tipo_servicio"`
	EstadoActual     string  `json:"estado_actual"`
	AsignadoAID      *int64  `json:"asignado_a_id"`
	TerminalComercio *string `json:"terminal_comercio"`
}

// UpdateStatusRequest payload for the technician status workflow.
type UpdateStatusRequest struct {
	EstadoActual     string  `json:"estado_actual"`
	TerminalComercio *string `json:"terminal_comercio"`
}

// ItemCodeResponse is the catalog wire shape.
type ItemCodeResponse struct {
	ID          int64  `json:"id"`
	Codigo      string `json:"codigo"`
	Tipo        string `json:"tipo"`
	Descripcion string `json:"descripcion"`
}

// ItemResponse is the composite item representation: the row joined with its
// catalog entry and optional assignee.
type ItemResponse struct {
	ID               int64            `json:"id"`
	FechaIngreso     time.Time        `json:"fecha_ingreso"`
	SN               string           `json:"sn"`
	ItemCodeID       int64            `json:"item_code_id"`
	TipoServicio     string           `json:"tipo_servicio"`
	EstadoActual     string           `json:"estado_actual"`
	AsignadoAID      *int64           `json:"asignado_a_id"`
	TerminalComercio *string          `json:"terminal_comercio"`
	ItemCode         ItemCodeResponse `json:"item_code"`
	AsignadoA        *UserResponse    `json:"asignado_a"`
}

// NewItemCodeResponse maps a catalog entry onto the wire shape.
func NewItemCodeResponse(code *domain.ItemCode) ItemCodeResponse {
	return ItemCodeResponse{
		ID:          code.ID,
		Codigo:      code.Codigo,
		Tipo:        code.Tipo,
		Descripcion: code.Descripcion,
	}
}

// NewItemResponse maps a composite record onto the wire shape.
func NewItemResponse(record *domain.InventoryRecord) ItemResponse {
	resp := ItemResponse{
		ID:               record.Item.ID,
		FechaIngreso:     record.Item.FechaIngreso,
		SN:               record.Item.SN,
		ItemCodeID:       record.Item.ItemCodeID,
		TipoServicio:     record.Item.TipoServicio,
		EstadoActual:     string(record.Item.EstadoActual),
		AsignadoAID:      record.Item.AssignedToID,
		TerminalComercio: record.Item.TerminalComercio,
		ItemCode:         NewItemCodeResponse(&record.ItemCode),
	}
	if record.Assignee != nil {
		user := NewUserResponse(record.Assignee)
		resp.AsignadoA = &user
	}
	return resp
}
