package events

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventItemCreated       EventType = "item_created"
	EventItemStatusChanged EventType = "item_status_changed"
	EventItemAssigned      EventType = "item_assigned"
	EventItemDeleted       EventType = "item_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ItemID    int64       `json:"item_id"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ItemCreatedPayload payload.
type ItemCreatedPayload struct {
	SN           string            `json:"sn"`
	ItemCodeID   int64             `json:"item_code_id"`
	Status       domain.ItemStatus `json:"status"`
	AssignedToID *int64            `json:"assigned_to_id,omitempty"`
}

// ItemStatusChangedPayload payload.
type ItemStatusChangedPayload struct {
	OldStatus domain.ItemStatus `json:"old_status"`
	NewStatus domain.ItemStatus `json:"new_status"`
	Terminal  *string           `json:"terminal,omitempty"`
}

// ItemAssignedPayload payload.
type ItemAssignedPayload struct {
	AssignedToID *int64 `json:"assigned_to_id,omitempty"`
}

// ItemDeletedPayload payload.
type ItemDeletedPayload struct {
	SN string `json:"sn"`
}
