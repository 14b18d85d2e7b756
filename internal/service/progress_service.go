package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/logger"
	"github.com/arturoeanton/roadmapai/internal/port"
)

// DefaultCacheLimit bounds how many client records stay in memory.
const DefaultCacheLimit = 10000

// ProgressService tracks completed nodes and awards badges, one record per
// client. The in-memory copy is authoritative: a failed write is logged and
// the process keeps serving the newer state.
//
// A record is only cached once the store has answered. When a read fails
// the caller gets defaults, a mutation is applied to those defaults for the
// reply only, and nothing is written, so the durable record survives.
type ProgressService struct {
	store port.SlotStore
	nodes port.NodeCounter
	log   *logger.Logger
	now   func() time.Time
	limit int

	mu    sync.Mutex
	cache map[string]domain.UserProgress
	dirty map[string]bool // cached records whose last write failed
}

// NewProgressService creates a progress engine over store. nodes supplies
// the denominator used for percentages.
func NewProgressService(store port.SlotStore, nodes port.NodeCounter, log *logger.Logger) *ProgressService {
	return &ProgressService{
		store: store,
		nodes: nodes,
		log:   log.With("service", "progress"),
		now:   time.Now,
		limit: DefaultCacheLimit,
		cache: make(map[string]domain.UserProgress),
		dirty: make(map[string]bool),
	}
}

// WithCacheLimit overrides DefaultCacheLimit. Records whose last write
// failed are never evicted.
func (s *ProgressService) WithCacheLimit(n int) *ProgressService {
	s.limit = n
	return s
}

// WithClock overrides the badge timestamp source.
func (s *ProgressService) WithClock(now func() time.Time) *ProgressService {
	s.now = now
	return s
}

// Get returns the client's record, creating the default on first access.
func (s *ProgressService) Get(ctx context.Context, clientID string) domain.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, _ := s.load(ctx, clientID)
	return p.Clone()
}

// IsComplete reports whether nodeID is completed for the client.
func (s *ProgressService) IsComplete(ctx context.Context, clientID, nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, _ := s.load(ctx, clientID)
	return p.IsComplete(nodeID)
}

// MarkComplete completes nodeID and returns the new record plus any badges
// awarded by this call. Completing an already-complete node changes nothing.
func (s *ProgressService) MarkComplete(ctx context.Context, clientID, nodeID string) (domain.UserProgress, []domain.Badge) {
	nodeID = strings.Clone(nodeID)

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, loaded := s.load(ctx, clientID)
	if cur.IsComplete(nodeID) {
		return cur.Clone(), nil
	}

	next, awarded := cur.WithCompleted(nodeID, s.nodes.TotalNodes(), s.now())
	if !loaded {
		s.log.Warn("progress not saved, stored record unreadable", "client_id", clientID, "node_id", nodeID)
		return next.Clone(), awarded
	}
	s.save(ctx, clientID, next)

	s.log.Debug("node completed", "client_id", clientID, "node_id", nodeID, "total_progress", next.TotalProgress)
	for _, b := range awarded {
		s.log.Info("badge awarded", "client_id", clientID, "badge_id", b.ID, "completed", len(next.CompletedNodes))
	}
	return next.Clone(), awarded
}

// MarkIncomplete removes nodeID. Badges already earned are kept.
func (s *ProgressService) MarkIncomplete(ctx context.Context, clientID, nodeID string) domain.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, loaded := s.load(ctx, clientID)
	if !cur.IsComplete(nodeID) {
		return cur.Clone()
	}

	next := cur.WithIncomplete(nodeID, s.nodes.TotalNodes())
	if !loaded {
		s.log.Warn("progress not saved, stored record unreadable", "client_id", clientID, "node_id", nodeID)
		return next.Clone()
	}
	s.save(ctx, clientID, next)
	s.log.Debug("node uncompleted", "client_id", clientID, "node_id", nodeID, "total_progress", next.TotalProgress)
	return next.Clone()
}

// Reset replaces the record with the default, clearing badges. It does not
// read the stored record, so it persists even while reads are failing.
func (s *ProgressService) Reset(ctx context.Context, clientID string) domain.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	def := domain.NewUserProgress()
	s.save(ctx, clientID, def)
	s.log.Info("progress reset", "client_id", clientID)
	return def.Clone()
}

// load must be called with s.mu held. The bool is false when the store
// could not be read; the defaults returned then are not cached.
func (s *ProgressService) load(ctx context.Context, clientID string) (domain.UserProgress, bool) {
	if p, ok := s.cache[clientID]; ok {
		return p, true
	}

	p := domain.NewUserProgress()
	raw, err := s.store.Get(ctx, port.SlotKey(clientID, port.SlotProgress))
	switch {
	case errors.Is(err, port.ErrNotFound):
	case err != nil:
		s.log.Warn("progress read failed, using defaults", "client_id", clientID, "error", err)
		p.TotalProgress = domain.CalculateProgress(0, s.nodes.TotalNodes())
		return p, false
	default:
		var stored domain.UserProgress
		if err := json.Unmarshal(raw, &stored); err != nil {
			s.log.Warn("stored progress is corrupt, using defaults", "client_id", clientID, "error", err)
		} else {
			p = stored.Normalize()
		}
	}

	// The denominator may have changed since the record was written.
	p.TotalProgress = domain.CalculateProgress(len(p.CompletedNodes), s.nodes.TotalNodes())
	s.remember(clientID, p)
	return p, true
}

// save must be called with s.mu held.
func (s *ProgressService) save(ctx context.Context, clientID string, p domain.UserProgress) {
	s.remember(clientID, p)

	raw, err := json.Marshal(p)
	if err != nil {
		s.log.Error("progress encode failed", "client_id", clientID, "error", err)
		s.dirty[clientID] = true
		return
	}
	if err := s.store.Put(ctx, port.SlotKey(clientID, port.SlotProgress), raw); err != nil {
		s.log.Error("progress write failed, keeping in-memory state", "client_id", clientID, "error", err)
		s.dirty[clientID] = true
		return
	}
	delete(s.dirty, clientID)
}

// remember caches p, evicting one saved record when the cache is full.
func (s *ProgressService) remember(clientID string, p domain.UserProgress) {
	if _, ok := s.cache[clientID]; !ok && s.limit > 0 && len(s.cache) >= s.limit {
		for id := range s.cache {
			if !s.dirty[id] {
				delete(s.cache, id)
				break
			}
		}
	}
	s.cache[clientID] = p
}
