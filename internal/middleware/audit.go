package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/logger"
)

// AuditWriter defines how audit records are persisted.
type AuditWriter interface {
	WriteAudit(ctx context.Context, ev domain.AuditEvent) error
}

// AuditMiddleware records one event per request.
func AuditMiddleware(writer AuditWriter, log *logger.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		// Fiber reuses context objects and their buffers, so copy request
		// data before the event outlives the handler.
		method := strings.Clone(c.Method())
		path := strings.Clone(c.Path())
		ip := strings.Clone(c.IP())
		userAgent := strings.Clone(c.Get("User-Agent"))

		err := c.Next()

		userID := "anonymous"
		if u := GetUser(c); u != nil {
			userID = u.ID
		}

		ev := domain.AuditEvent{
			Action:   domain.AuditActionHTTPRequest,
			UserID:   userID,
			Resource: path,
			Details: map[string]any{
				"method":      method,
				"status":      c.Response().StatusCode(),
				"duration_ms": time.Since(start).Milliseconds(),
			},
			IP:        ip,
			UserAgent: userAgent,
			CreatedAt: start,
		}
		if writeErr := writer.WriteAudit(context.Background(), ev); writeErr != nil {
			log.Error("failed to write audit log", "error", writeErr)
		}

		return err
	}
}
