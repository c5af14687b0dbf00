package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sevenboard/board-api/internal/api/http/handlers"
	"github.com/sevenboard/board-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Cards             *handlers.CardsHandler
	Notifications     *handlers.NotificationsHandler
	SessionMiddleware *auth.SessionMiddleware
	UploadDir         string
}

// RegisterRoutes wires HTTP routes. Intake (card creation and listing)
// stays open; board mutations and notifications require a dashboard
// session.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)

	api.Get("/cards", cfg.Cards.GetCards)
	api.Post("/cards", cfg.Cards.CreateCard)
	api.Get("/cards/:id/timeline", cfg.Cards.Timeline)
	api.Get("/cards/:id/events", cfg.Cards.Events)

	protected := api.Group("", cfg.SessionMiddleware.Handle)
	protected.Put("/cards/:id/status", cfg.Cards.UpdateStatus)
	protected.Get("/notifications", cfg.Notifications.List)
	protected.Post("/notifications/read", cfg.Notifications.MarkRead)
}
