package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arturoeanton/roadmapai/internal/adapter/store"
	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/logger"
	"github.com/arturoeanton/roadmapai/internal/port"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

var webDevNodes = []string{
	"html", "css", "javascript", "react", "nodejs",
	"express", "database", "nextjs", "authentication", "deployment",
}

func newProgress(s port.SlotStore) *ProgressService {
	return NewProgressService(s, port.FixedCount(10), logger.NewNop()).
		WithClock(func() time.Time { return fixedNow })
}

func newObservedProgress(s port.SlotStore) (*ProgressService, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewProgressService(s, port.FixedCount(10), logger.NewWithCore(core, false)).
		WithClock(func() time.Time { return fixedNow })
	return svc, logs
}

func badgeIDs(bs []domain.Badge) []string {
	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestProgress_DefaultRecord(t *testing.T) {
	svc := newProgress(store.NewMemoryStore())

	got := svc.Get(context.Background(), "c1")

	assert.Equal(t, domain.NewUserProgress(), got)
	assert.False(t, svc.IsComplete(context.Background(), "c1", "html"))
}

func TestProgress_FirstCompletion(t *testing.T) {
	svc := newProgress(store.NewMemoryStore())

	p, awarded := svc.MarkComplete(context.Background(), "c1", "html")

	assert.Equal(t, []string{"html"}, p.CompletedNodes)
	assert.Equal(t, 10, p.TotalProgress)
	require.Len(t, p.Badges, 1)
	assert.Equal(t, "first-step", p.Badges[0].ID)
	assert.Equal(t, fixedNow, p.Badges[0].EarnedAt)
	assert.Equal(t, []string{"first-step"}, badgeIDs(awarded))
}

func TestProgress_FifthNodeAwardsHalfwayOnly(t *testing.T) {
	ctx := context.Background()
	svc := newProgress(store.NewMemoryStore())
	for _, id := range webDevNodes[:4] {
		svc.MarkComplete(ctx, "c1", id)
	}

	p, awarded := svc.MarkComplete(ctx, "c1", "nodejs")

	assert.Equal(t, 50, p.TotalProgress)
	assert.Equal(t, []string{"halfway"}, badgeIDs(awarded))
	assert.Equal(t, []string{"first-step", "halfway"}, badgeIDs(p.Badges))
}

func TestProgress_AllNodesAwardsCompletion(t *testing.T) {
	ctx := context.Background()
	svc := newProgress(store.NewMemoryStore())

	var p domain.UserProgress
	for _, id := range webDevNodes {
		p, _ = svc.MarkComplete(ctx, "c1", id)
	}

	assert.Equal(t, 100, p.TotalProgress)
	assert.Equal(t, []string{"first-step", "halfway", "completion"}, badgeIDs(p.Badges))
}

func TestProgress_MarkCompleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newProgress(store.NewMemoryStore())

	first, _ := svc.MarkComplete(ctx, "c1", "html")
	second, awarded := svc.MarkComplete(ctx, "c1", "html")

	assert.Equal(t, first, second)
	assert.Empty(t, awarded)
}

func TestProgress_BadgesSurviveIncomplete(t *testing.T) {
	ctx := context.Background()
	svc := newProgress(store.NewMemoryStore())
	svc.MarkComplete(ctx, "c1", "html")

	p := svc.MarkIncomplete(ctx, "c1", "html")

	assert.Empty(t, p.CompletedNodes)
	assert.Equal(t, 0, p.TotalProgress)
	assert.Equal(t, []string{"first-step"}, badgeIDs(p.Badges))

	// Crossing the threshold again does not award a duplicate.
	p, awarded := svc.MarkComplete(ctx, "c1", "css")
	assert.Empty(t, awarded)
	assert.Len(t, p.Badges, 1)
}

func TestProgress_MarkIncompleteUnknownNode(t *testing.T) {
	ctx := context.Background()
	svc := newProgress(store.NewMemoryStore())
	before, _ := svc.MarkComplete(ctx, "c1", "html")

	after := svc.MarkIncomplete(ctx, "c1", "react")

	assert.Equal(t, before, after)
}

func TestProgress_ResetRestoresDefault(t *testing.T) {
	ctx := context.Background()
	svc := newProgress(store.NewMemoryStore())
	for _, id := range webDevNodes[:6] {
		svc.MarkComplete(ctx, "c1", id)
	}

	got := svc.Reset(ctx, "c1")

	assert.Equal(t, domain.NewUserProgress(), got)
	assert.Equal(t, domain.NewUserProgress(), svc.Get(ctx, "c1"))
}

func TestProgress_InvariantsHoldOverRandomSequences(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 20; run++ {
		svc := newProgress(store.NewMemoryStore())
		client := fmt.Sprintf("c%d", run)
		earned := map[string]bool{}

		for step := 0; step < 40; step++ {
			node := webDevNodes[rng.Intn(len(webDevNodes))]
			var p domain.UserProgress
			switch rng.Intn(10) {
			case 0:
				p = svc.Reset(ctx, client)
				earned = map[string]bool{}
			case 1, 2, 3:
				p = svc.MarkIncomplete(ctx, client, node)
			default:
				p, _ = svc.MarkComplete(ctx, client, node)
			}

			seen := map[string]bool{}
			for _, id := range p.CompletedNodes {
				require.False(t, seen[id], "duplicate node %s", id)
				seen[id] = true
			}
			require.Equal(t, domain.CalculateProgress(len(p.CompletedNodes), 10), p.TotalProgress)

			ids := map[string]bool{}
			for _, b := range p.Badges {
				require.False(t, ids[b.ID], "duplicate badge %s", b.ID)
				ids[b.ID] = true
			}
			for id := range earned {
				require.True(t, ids[id], "badge %s was retracted", id)
			}
			earned = ids
		}
	}
}

func TestProgress_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	newProgress(s).MarkComplete(ctx, "c1", "html")
	newProgress(s).MarkComplete(ctx, "c2", "css")

	p := newProgress(s).Get(ctx, "c1")

	assert.Equal(t, []string{"html"}, p.CompletedNodes)
	assert.Equal(t, []string{"first-step"}, badgeIDs(p.Badges))
}

func TestProgress_WriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	s := newFlakyStore()
	s.failPut = true
	svc := newProgress(s)

	p, awarded := svc.MarkComplete(ctx, "c1", "html")

	assert.Equal(t, []string{"html"}, p.CompletedNodes)
	assert.Len(t, awarded, 1)
	assert.True(t, svc.IsComplete(ctx, "c1", "html"))

	_, err := s.MemoryStore.Get(ctx, port.SlotKey("c1", port.SlotProgress))
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestProgress_ReadFailureUsesDefaults(t *testing.T) {
	s := newFlakyStore()
	s.failGet = true

	got := newProgress(s).Get(context.Background(), "c1")

	assert.Equal(t, domain.NewUserProgress(), got)
}

func TestProgress_CorruptRecordUsesDefaults(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Put(ctx, port.SlotKey("c1", port.SlotProgress), []byte("{not json")))

	got := newProgress(s).Get(ctx, "c1")

	assert.Equal(t, domain.NewUserProgress(), got)
}

func TestProgress_PartialRecordIsNormalized(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Put(ctx, port.SlotKey("c1", port.SlotProgress), []byte(`{"completedNodes":["html","css"]}`)))

	got := newProgress(s).Get(ctx, "c1")

	assert.Equal(t, []string{"html", "css"}, got.CompletedNodes)
	assert.Equal(t, 20, got.TotalProgress)
	assert.Equal(t, 1, got.CurrentLevel)
	assert.NotNil(t, got.Badges)
	assert.NotNil(t, got.CustomRoadmaps)
}

func TestProgress_StoredShape(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	newProgress(s).MarkComplete(ctx, "c1", "html")

	raw, err := s.Get(ctx, port.SlotKey("c1", port.SlotProgress))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "completedNodes")
	assert.Contains(t, doc, "totalProgress")
	assert.Contains(t, doc, "currentLevel")
	assert.Contains(t, doc, "badges")
	assert.Contains(t, doc, "customRoadmaps")
}

func TestProgress_ReturnedRecordIsACopy(t *testing.T) {
	ctx := context.Background()
	svc := newProgress(store.NewMemoryStore())
	p, _ := svc.MarkComplete(ctx, "c1", "html")

	p.CompletedNodes[0] = "mutated"

	assert.True(t, svc.IsComplete(ctx, "c1", "html"))
}

func TestProgress_ReadFailureDoesNotOverwriteStoredRecord(t *testing.T) {
	ctx := context.Background()
	s := newFlakyStore()
	seed := newProgress(s)
	for _, id := range webDevNodes[:4] {
		seed.MarkComplete(ctx, "c1", id)
	}

	s.failGet = true
	svc := newProgress(s)
	p, _ := svc.MarkComplete(ctx, "c1", "nodejs")
	assert.Equal(t, []string{"nodejs"}, p.CompletedNodes)

	raw, err := s.MemoryStore.Get(ctx, port.SlotKey("c1", port.SlotProgress))
	require.NoError(t, err)
	var stored domain.UserProgress
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, webDevNodes[:4], stored.CompletedNodes)
	assert.Equal(t, []string{"first-step"}, badgeIDs(stored.Badges))

	s.failGet = false
	assert.Equal(t, webDevNodes[:4], svc.Get(ctx, "c1").CompletedNodes)

	p, awarded := svc.MarkComplete(ctx, "c1", "nodejs")
	assert.Len(t, p.CompletedNodes, 5)
	assert.Equal(t, []string{"halfway"}, badgeIDs(awarded))
}

func TestProgress_ReadFailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	s := newFlakyStore()
	newProgress(s).MarkComplete(ctx, "c1", "html")

	s.failGet = true
	svc := newProgress(s)
	assert.False(t, svc.IsComplete(ctx, "c1", "html"))

	s.failGet = false
	assert.True(t, svc.IsComplete(ctx, "c1", "html"))
}

func TestProgress_ReadFailureMarkIncompleteKeepsRecord(t *testing.T) {
	ctx := context.Background()
	s := newFlakyStore()
	newProgress(s).MarkComplete(ctx, "c1", "html")

	s.failGet = true
	svc := newProgress(s)
	svc.MarkIncomplete(ctx, "c1", "html")

	s.failGet = false
	assert.True(t, newProgress(s).IsComplete(ctx, "c1", "html"))
}

func TestProgress_CacheIsBounded(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	svc := newProgress(s).WithCacheLimit(3)

	for i := 0; i < 10; i++ {
		svc.MarkComplete(ctx, fmt.Sprintf("c%d", i), "html")
	}

	svc.mu.Lock()
	cached := len(svc.cache)
	svc.mu.Unlock()
	assert.Equal(t, 3, cached)

	// Evicted clients are reloaded from the store.
	for i := 0; i < 10; i++ {
		assert.True(t, svc.IsComplete(ctx, fmt.Sprintf("c%d", i), "html"))
	}
}

func TestProgress_CacheKeepsUnsavedRecords(t *testing.T) {
	ctx := context.Background()
	s := newFlakyStore()
	svc := newProgress(s).WithCacheLimit(2)

	s.failPut = true
	svc.MarkComplete(ctx, "unsaved", "html")
	s.failPut = false
	for i := 0; i < 5; i++ {
		svc.MarkComplete(ctx, fmt.Sprintf("c%d", i), "css")
	}

	assert.True(t, svc.IsComplete(ctx, "unsaved", "html"))
}

func TestProgress_LogsBadgeAwards(t *testing.T) {
	ctx := context.Background()
	svc, logs := newObservedProgress(store.NewMemoryStore())

	svc.MarkComplete(ctx, "c1", "html")

	entries := logs.FilterMessage("badge awarded").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "c1", fields["client_id"])
	assert.Equal(t, "first-step", fields["badge_id"])
	assert.EqualValues(t, 1, fields["completed"])
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
}

func TestProgress_LogsWriteFailure(t *testing.T) {
	ctx := context.Background()
	s := newFlakyStore()
	s.failPut = true
	svc, logs := newObservedProgress(s)

	svc.MarkComplete(ctx, "c1", "html")

	entries := logs.FilterMessage("progress write failed, keeping in-memory state").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "c1", entries[0].ContextMap()["client_id"])
	assert.Equal(t, errStoreDown.Error(), entries[0].ContextMap()["error"])
}

func TestProgress_LogsUnsavedMutation(t *testing.T) {
	ctx := context.Background()
	s := newFlakyStore()
	s.failGet = true
	svc, logs := newObservedProgress(s)

	svc.MarkComplete(ctx, "c1", "html")

	assert.Equal(t, 1, logs.FilterMessage("progress read failed, using defaults").Len())
	assert.Equal(t, 1, logs.FilterMessage("progress not saved, stored record unreadable").Len())
	assert.Zero(t, logs.FilterMessage("badge awarded").Len())
}
