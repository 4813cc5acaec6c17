package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/service"
	apperrors "github.com/spec-kit/inventory-service/pkg/util/errorutil"
)

// InventoryHandler manages inventory item endpoints.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventoryService}
}

// Create handles POST /inventory.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SN == "" || req.ItemCodeID == 0 {
		return apperrors.NewValidationError("sn and item_code_id required", nil)
	}

	record, err := h.inventory.Create(c.Context(), actor, service.ItemCreateInput{
		SN:               req.SN,
		ItemCodeID:       req.ItemCodeID,
		TipoServicio:     req.TipoServicio,
		EstadoActual:     domain.ItemStatus(req.EstadoActual),
		AssignedToID:     req.AsignadoAID,
		TerminalComercio: req.TerminalComercio,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewItemResponse(record))
}

// List handles GET /inventory.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	records, err := h.inventory.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(itemResponses(records))
}

// ListMine handles GET /inventory/my-items.
func (h *InventoryHandler) ListMine(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	records, err := h.inventory.ListMine(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(itemResponses(records))
}

// Get handles GET /inventory/:id.
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseItemID(c)
	if err != nil {
		return err
	}
	record, err := h.inventory.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewItemResponse(record))
}

// Update handles PUT /inventory/:id.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseItemID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	record, err := h.inventory.Update(c.Context(), actor, id, service.ItemUpdateInput{
		SN:               req.SN,
		ItemCodeID:       req.ItemCodeID,
		TipoServicio:     req.TipoServicio,
		EstadoActual:     domain.ItemStatus(req.EstadoActual),
		AssignedToID:     req.AsignadoAID,
		TerminalComercio: req.TerminalComercio,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewItemResponse(record))
}

// UpdateStatus handles PATCH /inventory/:id/status.
func (h *InventoryHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseItemID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EstadoActual == "" {
		return apperrors.NewValidationError("estado_actual required", nil)
	}

	record, err := h.inventory.UpdateStatus(c.Context(), actor, id, domain.ItemStatus(req.EstadoActual), req.TerminalComercio)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewItemResponse(record))
}

// Delete handles DELETE /inventory/:id.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseItemID(c)
	if err != nil {
		return err
	}
	if err := h.inventory.Delete(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseItemID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid item id", nil)
	}
	return id, nil
}

func itemResponses(records []domain.InventoryRecord) []dto.ItemResponse {
	items := make([]dto.ItemResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewItemResponse(&records[i]))
	}
	return items
}
