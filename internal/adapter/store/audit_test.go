package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/logger"
)

func TestAuditLog_ListNewestFirstWithFilter(t *testing.T) {
	ctx := context.Background()
	a := NewAuditLog(10, logger.NewNop())
	require.NoError(t, a.WriteAudit(ctx, domain.AuditEvent{Action: domain.AuditActionLogin, UserID: "1"}))
	require.NoError(t, a.WriteAudit(ctx, domain.AuditEvent{Action: domain.AuditActionHTTPRequest, UserID: "1"}))
	require.NoError(t, a.WriteAudit(ctx, domain.AuditEvent{Action: domain.AuditActionLogin, UserID: "2"}))

	all := a.List(ctx, 0, "")
	require.Len(t, all, 3)
	assert.Equal(t, "2", all[0].UserID)
	assert.False(t, all[0].CreatedAt.IsZero())

	logins := a.List(ctx, 0, domain.AuditActionLogin)
	require.Len(t, logins, 2)
	assert.Equal(t, "2", logins[0].UserID)
	assert.Equal(t, "1", logins[1].UserID)

	assert.Len(t, a.List(ctx, 1, ""), 1)
}

func TestAuditLog_DropsOldestAtCapacity(t *testing.T) {
	ctx := context.Background()
	a := NewAuditLog(3, logger.NewNop())
	for i := 0; i < 5; i++ {
		require.NoError(t, a.WriteAudit(ctx, domain.AuditEvent{Action: "x", UserID: fmt.Sprint(i)}))
	}

	got := a.List(ctx, 0, "")

	require.Len(t, got, 3)
	assert.Equal(t, []string{"4", "3", "2"}, []string{got[0].UserID, got[1].UserID, got[2].UserID})
}

// fakeArchive records appended events and serves them back newest first.
type fakeArchive struct {
	events     []domain.AuditEvent
	failAppend bool
	failList   bool
}

var errArchiveDown = errors.New("archive down")

func (f *fakeArchive) AppendAudit(_ context.Context, ev domain.AuditEvent) error {
	if f.failAppend {
		return errArchiveDown
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeArchive) ListAudit(_ context.Context, limit int, action string) ([]domain.AuditEvent, error) {
	if f.failList {
		return nil, errArchiveDown
	}
	out := []domain.AuditEvent{}
	for i := len(f.events) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if action == "" || f.events[i].Action == action {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

func TestAuditLog_ArchiveOutlivesMemoryWindow(t *testing.T) {
	ctx := context.Background()
	archive := &fakeArchive{}
	a := NewAuditLog(2, logger.NewNop()).WithArchive(archive)
	for i := 0; i < 5; i++ {
		require.NoError(t, a.WriteAudit(ctx, domain.AuditEvent{Action: domain.AuditActionLogin, UserID: fmt.Sprint(i)}))
	}

	require.Len(t, archive.events, 5)
	assert.False(t, archive.events[0].CreatedAt.IsZero())

	all := a.List(ctx, 0, "")
	require.Len(t, all, 5)
	assert.Equal(t, "4", all[0].UserID)
	assert.Equal(t, "0", all[4].UserID)
}

func TestAuditLog_ArchiveFailures(t *testing.T) {
	ctx := context.Background()
	archive := &fakeArchive{failAppend: true}
	a := NewAuditLog(10, logger.NewNop()).WithArchive(archive)

	err := a.WriteAudit(ctx, domain.AuditEvent{Action: domain.AuditActionLogin, UserID: "1"})
	assert.ErrorIs(t, err, errArchiveDown)

	archive.failList = true
	got := a.List(ctx, 0, "")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].UserID)
}

func TestPostgresStore_AuditIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	action := "test_" + uuid.NewString()
	a := NewAuditLog(1, logger.NewNop()).WithArchive(s)
	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, a.WriteAudit(ctx, domain.AuditEvent{
			Action:    action,
			UserID:    fmt.Sprint(i),
			Resource:  "/api/v1/progress",
			Details:   map[string]any{"node_id": "html"},
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	got := a.List(ctx, 2, action)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].UserID)
	assert.Equal(t, "1", got[1].UserID)
	assert.Equal(t, "html", got[0].Details["node_id"])
	assert.True(t, base.Add(2*time.Second).Equal(got[0].CreatedAt))
}
