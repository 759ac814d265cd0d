// Package server assembles the Fiber application.
package server

import (
	"time"

	"littlelemon/internal/config"
	"littlelemon/internal/handlers"
	"littlelemon/internal/middleware"
	"littlelemon/internal/repositories"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Options tweaks the application built by New.
type Options struct {
	// Publisher receives order events. Leave it nil to disable events.
	Publisher services.EventPublisher
	// Quiet turns off the request logger.
	Quiet bool
}

// New wires repositories, services and handlers on top of store and returns
// the app together with the auth service, which main also needs.
func New(cfg *config.Config, store *repositories.Store, opts Options) (*fiber.App, *services.AuthService) {
	authService := services.NewAuthService(store.Users(), cfg.JWTSecret, cfg.TokenTTL)
	catalogService := services.NewCatalogService(store.MenuItems(), store.Categories())
	cartService := services.NewCartService(store)
	orderService := services.NewOrderService(store, opts.Publisher)
	groupService := services.NewGroupService(store.Users())

	paging := handlers.Paging{DefaultSize: cfg.DefaultPerPage, MaxSize: cfg.MaxPerPage}
	authHandler := handlers.NewAuthHandler(authService)
	menuItemHandler := handlers.NewMenuItemHandler(catalogService, paging)
	cartHandler := handlers.NewCartHandler(cartService, paging)
	orderHandler := handlers.NewOrderHandler(orderService, paging)
	groupHandler := handlers.NewGroupHandler(groupService)

	app := fiber.New(fiber.Config{AppName: "Little Lemon API"})
	app.Use(recover.New())
	if !opts.Quiet {
		app.Use(logger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := store.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "connected",
			"events":   opts.Publisher != nil,
		})
	})

	api := app.Group("/api")

	// Public routes must be registered before the protected group.
	authHandler.RegisterRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	menuItemHandler.RegisterRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	groupHandler.RegisterRoutes(protected)

	return app, authService
}
