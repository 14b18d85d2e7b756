package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/middleware"
	"github.com/arturoeanton/roadmapai/internal/port"
	"github.com/arturoeanton/roadmapai/internal/service"
)

// ProgressHandler exposes the signed-in user's progress record.
type ProgressHandler struct {
	progress *service.ProgressService
	roadmap  *service.RoadmapService
	catalog  port.RoadmapCatalog
	audit    middleware.AuditWriter
	events   *EventHub
}

// NewProgressHandler creates a new progress handler. audit and events may be nil.
func NewProgressHandler(progress *service.ProgressService, roadmap *service.RoadmapService, catalog port.RoadmapCatalog, audit middleware.AuditWriter, events *EventHub) *ProgressHandler {
	return &ProgressHandler{progress: progress, roadmap: roadmap, catalog: catalog, audit: audit, events: events}
}

// Register sets up progress routes behind requireAuth.
func (h *ProgressHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	progress := router.Group("/progress", requireAuth)
	progress.Get("/", h.Get)
	progress.Post("/reset", h.Reset)
	progress.Post("/:nodeId/complete", h.Complete)
	progress.Delete("/:nodeId/complete", h.Incomplete)
	if h.events != nil {
		NewEventsHandler(h.events).Register(progress)
	}

	router.Get("/dashboard", requireAuth, h.Dashboard)
}

func (h *ProgressHandler) Get(c fiber.Ctx) error {
	return success(c, fiber.StatusOK, h.progress.Get(c.Context(), clientID(c)))
}

// Complete marks a node complete and reports badges awarded by this call.
func (h *ProgressHandler) Complete(c fiber.Ctx) error {
	nodeID := strings.Clone(c.Params("nodeId"))
	if _, ok := h.catalog.Node(nodeID); !ok {
		return failure(c, fiber.StatusNotFound, "node not found")
	}

	user := clientID(c)
	p, awarded := h.progress.MarkComplete(c.Context(), user, nodeID)
	ids := make([]string, 0, len(awarded))
	for _, b := range awarded {
		recordAudit(h.audit, c, domain.AuditActionBadgeAwarded, user, map[string]any{"badge_id": b.ID, "node_id": nodeID})
		ids = append(ids, b.ID)
	}
	h.events.Publish(user, ProgressEvent{Type: EventCompleted, NodeID: nodeID, TotalProgress: p.TotalProgress, Awarded: ids})
	if awarded == nil {
		awarded = []domain.Badge{}
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"progress": p,
		"awarded":  awarded,
	})
}

func (h *ProgressHandler) Incomplete(c fiber.Ctx) error {
	nodeID := strings.Clone(c.Params("nodeId"))
	if _, ok := h.catalog.Node(nodeID); !ok {
		return failure(c, fiber.StatusNotFound, "node not found")
	}
	user := clientID(c)
	p := h.progress.MarkIncomplete(c.Context(), user, nodeID)
	h.events.Publish(user, ProgressEvent{Type: EventIncomplete, NodeID: nodeID, TotalProgress: p.TotalProgress})
	return success(c, fiber.StatusOK, p)
}

func (h *ProgressHandler) Reset(c fiber.Ctx) error {
	user := clientID(c)
	p := h.progress.Reset(c.Context(), user)
	recordAudit(h.audit, c, domain.AuditActionProgressReset, user, nil)
	h.events.Publish(user, ProgressEvent{Type: EventReset, TotalProgress: p.TotalProgress})
	return success(c, fiber.StatusOK, p)
}

func (h *ProgressHandler) Dashboard(c fiber.Ctx) error {
	return success(c, fiber.StatusOK, h.roadmap.Dashboard(c.Context(), clientID(c)))
}
