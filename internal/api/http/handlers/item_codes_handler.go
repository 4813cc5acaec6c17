package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/service"
)

// ItemCodesHandler exposes the hardware catalog.
type ItemCodesHandler struct {
	inventory *service.InventoryService
}

// NewItemCodesHandler constructs handler.
func NewItemCodesHandler(inventoryService *service.InventoryService) *ItemCodesHandler {
	return &ItemCodesHandler{inventory: inventoryService}
}

// List handles GET /item-codes.
func (h *ItemCodesHandler) List(c *fiber.Ctx) error {
	codes, err := h.inventory.ListItemCodes(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ItemCodeResponse, 0, len(codes))
	for i := range codes {
		items = append(items, dto.NewItemCodeResponse(&codes[i]))
	}
	return c.JSON(items)
}
