package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/http/handlers"
	"github.com/spec-kit/inventory-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	ItemCodes      *handlers.ItemCodesHandler
	Inventory      *handlers.InventoryHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/auth/logout", cfg.Auth.Logout)

	protected.Post("/users", auth.RequireAdmin(), cfg.Users.Create)
	protected.Get("/users/technicians", auth.RequireAdmin(), cfg.Users.ListTechnicians)

	protected.Get("/item-codes", cfg.ItemCodes.List)

	inventory := protected.Group("/inventory")
	inventory.Post("/", cfg.Inventory.Create)
	inventory.Get("/", cfg.Inventory.List)
	inventory.Get("/my-items", cfg.Inventory.ListMine)
	inventory.Get("/:id", cfg.Inventory.Get)
	inventory.Put("/:id", cfg.Inventory.Update)
	inventory.Patch("/:id/status", cfg.Inventory.UpdateStatus)
	inventory.Delete("/:id", auth.RequireAdmin(), cfg.Inventory.Delete)
}
