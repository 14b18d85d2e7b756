package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/port"
)

// SeedUsers are the demo identities every process starts with.
func SeedUsers() []domain.User {
	return []domain.User{
		{
			ID:        "1",
			Email:     "test@example.com",
			Name:      "Test User",
			AvatarURL: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=32&h=32&fit=crop&crop=face",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "2",
			Email:     "demo@roadmapai.com",
			Name:      "Demo User",
			AvatarURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=32&h=32&fit=crop&crop=face",
			CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

// IdentityList is an append-only, process-lifetime identity store.
type IdentityList struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewIdentityList returns a store holding copies of seed.
func NewIdentityList(seed ...domain.User) *IdentityList {
	return &IdentityList{users: append([]domain.User(nil), seed...)}
}

// FindByEmail matches email case-insensitively and returns a copy, or
// port.ErrNotFound.
func (l *IdentityList) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, u := range l.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, port.ErrNotFound
}

// FindByID returns a copy of the identity with id, or port.ErrNotFound.
func (l *IdentityList) FindByID(_ context.Context, id string) (*domain.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, u := range l.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, port.ErrNotFound
}

// Insert assigns an id when u.ID is empty.
func (l *IdentityList) Insert(_ context.Context, u *domain.User) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return port.DuplicateUser("User already exists")
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	l.users = append(l.users, *u)
	return nil
}

// Count reports how many identities are registered.
func (l *IdentityList) Count(_ context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.users), nil
}
