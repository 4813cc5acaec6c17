package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util/errorutil"
)

// InventoryService coordinates inventory item workflows and enforces the
// role and ownership rules: admins may change any field, the assigned
// technician only the status and terminal of their own items.
type InventoryService struct {
	items      repository.InventoryRepository
	codes      repository.ItemCodeRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// InventoryDependencies bundles repositories for the inventory service.
type InventoryDependencies struct {
	InventoryRepo repository.InventoryRepository
	ItemCodeRepo  repository.ItemCodeRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
}

// ItemCreateInput describes item creation payload.
type ItemCreateInput struct {
	SN               string
	ItemCodeID       int64
	TipoServicio     string
	EstadoActual     domain.ItemStatus
	AssignedToID     *int64
	TerminalComercio *string
}

// ItemUpdateInput describes a full item update payload.
type ItemUpdateInput struct {
	SN               string
	ItemCodeID       int64
	TipoServicio     string
	EstadoActual     domain.ItemStatus
	AssignedToID     *int64
	TerminalComercio *string
}

// NewInventoryService constructs the service.
func NewInventoryService(deps InventoryDependencies) *InventoryService {
	return &InventoryService{
		items:      deps.InventoryRepo,
		codes:      deps.ItemCodeRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create registers a new inventory item and returns its composite record.
func (s *InventoryService) Create(ctx context.Context, actor *domain.User, input ItemCreateInput) (*domain.InventoryRecord, error) {
	input.SN = strings.TrimSpace(input.SN)
	if input.SN == "" {
		return nil, apperrors.NewValidationError("sn required", nil)
	}
	if input.TipoServicio == "" {
		input.TipoServicio = "implementacion"
	}
	if input.EstadoActual == "" {
		input.EstadoActual = domain.ItemStatusEnBodega
	}
	terminal, err := normalizeTerminal(input.EstadoActual, input.TerminalComercio)
	if err != nil {
		return nil, err
	}

	if _, err := s.codes.GetByID(ctx, input.ItemCodeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("item code does not exist", map[string]any{"item_code_id": input.ItemCodeID})
		}
		return nil, apperrors.MapError(err)
	}
	if input.AssignedToID != nil {
		if _, err := s.users.GetByID(ctx, *input.AssignedToID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("assigned user does not exist", map[string]any{"asignado_a_id": *input.AssignedToID})
			}
			return nil, apperrors.MapError(err)
		}
	}

	item := &domain.InventoryItem{
		SN:               input.SN,
		ItemCodeID:       input.ItemCodeID,
		TipoServicio:     input.TipoServicio,
		EstadoActual:     input.EstadoActual,
		AssignedToID:     input.AssignedToID,
		TerminalComercio: terminal,
	}
	if err := s.items.Create(ctx, item); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewValidationError("serial number already exists", map[string]any{"sn": input.SN})
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventItemCreated,
		ItemID:  item.ID,
		ActorID: actor.ID,
		Payload: events.ItemCreatedPayload{
			SN:           item.SN,
			ItemCodeID:   item.ItemCodeID,
			Status:       item.EstadoActual,
			AssignedToID: item.AssignedToID,
		},
	})
	return s.record(ctx, item.ID)
}

// List returns every item as a composite record, newest first.
func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	records, err := s.items.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// ListMine returns the items assigned to the caller, newest first.
func (s *InventoryService) ListMine(ctx context.Context, actor *domain.User) ([]domain.InventoryRecord, error) {
	records, err := s.items.ListByAssignee(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// Get returns the composite record for a single item.
func (s *InventoryService) Get(ctx context.Context, id int64) (*domain.InventoryRecord, error) {
	return s.record(ctx, id)
}

// ListItemCodes returns the hardware catalog ordered by code.
func (s *InventoryService) ListItemCodes(ctx context.Context) ([]domain.ItemCode, error) {
	codes, err := s.codes.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return codes, nil
}

// Update applies a full update. Admins may change any field; the assigned
// technician only status and terminal. Identity field changes by non-admins
// are rejected outright rather than silently dropped.
func (s *InventoryService) Update(ctx context.Context, actor *domain.User, id int64, input ItemUpdateInput) (*domain.InventoryRecord, error) {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if !input.EstadoActual.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"estado_actual": input.EstadoActual})
	}
	terminal, err := normalizeTerminal(input.EstadoActual, input.TerminalComercio)
	if err != nil {
		return nil, err
	}

	oldStatus := item.EstadoActual
	oldAssignee := item.AssignedToID

	if actor.IsAdmin {
		input.SN = strings.TrimSpace(input.SN)
		if input.SN == "" {
			return nil, apperrors.NewValidationError("sn required", nil)
		}
		if _, err := s.codes.GetByID(ctx, input.ItemCodeID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("item code does not exist", map[string]any{"item_code_id": input.ItemCodeID})
			}
			return nil, apperrors.MapError(err)
		}
		if input.AssignedToID != nil {
			if _, err := s.users.GetByID(ctx, *input.AssignedToID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, apperrors.NewValidationError("assigned user does not exist", map[string]any{"asignado_a_id": *input.AssignedToID})
				}
				return nil, apperrors.MapError(err)
			}
		}
		item.SN = input.SN
		item.ItemCodeID = input.ItemCodeID
		item.TipoServicio = input.TipoServicio
		item.AssignedToID = input.AssignedToID
	} else {
		if !item.AssignedTo(actor.ID) {
			return nil, apperrors.NewForbidden("not authorized to edit this item")
		}
		if err := rejectIdentityChanges(item, input); err != nil {
			return nil, err
		}
	}

	item.EstadoActual = input.EstadoActual
	item.TerminalComercio = terminal

	if err := s.items.Update(ctx, item); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewValidationError("serial number already exists", map[string]any{"sn": item.SN})
		}
		return nil, apperrors.MapError(err)
	}

	if oldStatus != item.EstadoActual {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventItemStatusChanged,
			ItemID:  item.ID,
			ActorID: actor.ID,
			Payload: events.ItemStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: item.EstadoActual,
				Terminal:  item.TerminalComercio,
			},
		})
	}
	if !sameAssignee(oldAssignee, item.AssignedToID) {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventItemAssigned,
			ItemID:  item.ID,
			ActorID: actor.ID,
			Payload: events.ItemAssignedPayload{AssignedToID: item.AssignedToID},
		})
	}
	return s.record(ctx, item.ID)
}

// UpdateStatus moves an item through its lifecycle. Only the assigned
// technician may use this path.
func (s *InventoryService) UpdateStatus(ctx context.Context, actor *domain.User, id int64, status domain.ItemStatus, terminal *string) (*domain.InventoryRecord, error) {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.AssignedTo(actor.ID) {
		return nil, apperrors.NewForbidden("not authorized to update this item")
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"estado_actual": status})
	}
	normalized, err := normalizeTerminal(status, terminal)
	if err != nil {
		return nil, err
	}

	oldStatus := item.EstadoActual
	item.EstadoActual = status
	item.TerminalComercio = normalized
	if err := s.items.Update(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}

	if oldStatus != status {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventItemStatusChanged,
			ItemID:  item.ID,
			ActorID: actor.ID,
			Payload: events.ItemStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: status,
				Terminal:  normalized,
			},
		})
	}
	return s.record(ctx, item.ID)
}

// Delete removes an item. Admin-only at the route level; re-checked here.
func (s *InventoryService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !actor.IsAdmin {
		return apperrors.NewForbidden("only admins may delete items")
	}
	item, err := s.getItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("item", map[string]any{"item_id": id})
		}
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventItemDeleted,
		ItemID:  id,
		ActorID: actor.ID,
		Payload: events.ItemDeletedPayload{SN: item.SN},
	})
	return nil
}

func (s *InventoryService) getItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("item", map[string]any{"item_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return item, nil
}

func (s *InventoryService) record(ctx context.Context, id int64) (*domain.InventoryRecord, error) {
	record, err := s.items.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("item", map[string]any{"item_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

func (s *InventoryService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

// normalizeTerminal enforces the terminal invariant: required while deployed
// at a merchant, cleared in every other status.
func normalizeTerminal(status domain.ItemStatus, terminal *string) (*string, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"estado_actual": status})
	}
	if status.RequiresTerminal() {
		if terminal == nil || strings.TrimSpace(*terminal) == "" {
			return nil, apperrors.NewValidationError("terminal_comercio required for status En Comercio", nil)
		}
		trimmed := strings.TrimSpace(*terminal)
		return &trimmed, nil
	}
	return nil, nil
}

func rejectIdentityChanges(item *domain.InventoryItem, input ItemUpdateInput) error {
	if strings.TrimSpace(input.SN) != item.SN {
		return apperrors.NewForbidden("not authorized to change sn")
	}
	if input.ItemCodeID != item.ItemCodeID {
		return apperrors.NewForbidden("not authorized to change item_code_id")
	}
	if input.TipoServicio != item.TipoServicio {
		return apperrors.NewForbidden("not authorized to change tipo_servicio")
	}
	if !sameAssignee(input.AssignedToID, item.AssignedToID) {
		return apperrors.NewForbidden("not authorized to change asignado_a_id")
	}
	return nil
}

func sameAssignee(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
