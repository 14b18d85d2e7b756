package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/logger"
)

// DefaultAuditCapacity bounds the in-memory audit trail.
const DefaultAuditCapacity = 1000

// AuditArchive is durable storage for audit events. PostgresStore is one.
type AuditArchive interface {
	AppendAudit(ctx context.Context, ev domain.AuditEvent) error
	ListAudit(ctx context.Context, limit int, action string) ([]domain.AuditEvent, error)
}

// AuditLog keeps the most recent audit events in memory and mirrors each
// one to the structured log. With an archive attached, events are also
// appended there and listings are served from it.
type AuditLog struct {
	mu       sync.RWMutex
	events   []domain.AuditEvent
	capacity int
	log      *logger.Logger
	archive  AuditArchive
}

// NewAuditLog creates an audit trail holding at most capacity events.
func NewAuditLog(capacity int, log *logger.Logger) *AuditLog {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &AuditLog{capacity: capacity, log: log.With("component", "audit")}
}

// WithArchive makes archive the durable copy of the trail.
func (a *AuditLog) WithArchive(archive AuditArchive) *AuditLog {
	a.archive = archive
	return a
}

// WriteAudit records ev in memory and, when an archive is attached, appends
// it there. The in-memory copy is kept even if the archive write fails.
func (a *AuditLog) WriteAudit(ctx context.Context, ev domain.AuditEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}

	a.mu.Lock()
	if len(a.events) == a.capacity {
		copy(a.events, a.events[1:])
		a.events = a.events[:len(a.events)-1]
	}
	a.events = append(a.events, ev)
	a.mu.Unlock()

	a.log.Debug("audit", "action", ev.Action, "user_id", ev.UserID, "resource", ev.Resource)

	if a.archive != nil {
		if err := a.archive.AppendAudit(ctx, ev); err != nil {
			return fmt.Errorf("archive audit event: %w", err)
		}
	}
	return nil
}

// List returns up to limit events, newest first. An empty action matches
// every event. If the archive cannot be read the in-memory window is used.
func (a *AuditLog) List(ctx context.Context, limit int, action string) []domain.AuditEvent {
	if a.archive != nil {
		events, err := a.archive.ListAudit(ctx, limit, action)
		if err == nil {
			return events
		}
		a.log.Warn("audit archive read failed, listing recent events", "error", err)
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	out := []domain.AuditEvent{}
	for i := len(a.events) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if action != "" && a.events[i].Action != action {
			continue
		}
		out = append(out, a.events[i])
	}
	return out
}
