package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/roadmapai/internal/adapter/store"
)

// AuditHandler handles audit log endpoints.
type AuditHandler struct {
	log *store.AuditLog
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(log *store.AuditLog) *AuditHandler {
	return &AuditHandler{log: log}
}

// Register sets up audit routes behind requireAuth.
func (h *AuditHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	audit := router.Group("/audit", requireAuth)
	audit.Get("/logs", h.ListLogs)
}

// ListLogs returns audit events with optional ?limit= and ?action= filters.
func (h *AuditHandler) ListLogs(c fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "100"))
	if err != nil || limit < 0 {
		return failure(c, fiber.StatusBadRequest, "invalid limit")
	}

	logs := h.log.List(c.Context(), limit, c.Query("action"))
	return success(c, fiber.StatusOK, fiber.Map{
		"logs":  logs,
		"count": len(logs),
	})
}
