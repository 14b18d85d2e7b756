package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/roadmapai/internal/adapter/store"
	"github.com/arturoeanton/roadmapai/internal/middleware"
	"github.com/arturoeanton/roadmapai/internal/port"
	"github.com/arturoeanton/roadmapai/internal/service"
)

// Version is reported by /health and tagged on exported spans.
const Version = "1.0.0"

// Deps are the services the HTTP API is built on.
type Deps struct {
	AppName   string
	Auth      *service.AuthService
	Progress  *service.ProgressService
	Roadmap   *service.RoadmapService
	Assistant *service.AssistantService
	Catalog   port.RoadmapCatalog
	Audit     *store.AuditLog
	Events    *EventHub
}

// Mount registers every /api/v1 route on app.
func Mount(app *fiber.App, d Deps) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     d.AppName,
			"version": Version,
			"model":   d.Assistant.Model(),
		})
	})

	requireAuth := middleware.RequireAuth(d.Auth)
	optionalAuth := middleware.OptionalAuth(d.Auth)

	// d.Audit is typed; keep a nil interface when it is absent.
	var audit middleware.AuditWriter
	if d.Audit != nil {
		audit = d.Audit
	}

	NewAuthHandler(d.Auth, audit).Register(api, requireAuth)
	NewRoadmapHandler(d.Roadmap).Register(api, optionalAuth)
	NewProgressHandler(d.Progress, d.Roadmap, d.Catalog, audit, d.Events).Register(api, requireAuth)
	NewChatHandler(d.Assistant).Register(api, requireAuth)
	if d.Audit != nil {
		NewAuditHandler(d.Audit).Register(api, requireAuth)
	}
}
