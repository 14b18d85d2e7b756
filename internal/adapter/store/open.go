package store

import (
	"context"
	"fmt"

	"github.com/arturoeanton/roadmapai/internal/port"
	"github.com/arturoeanton/roadmapai/pkg/config"
)

// Open returns the slot store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (port.SlotStore, error) {
	switch cfg.StoreDriver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "file":
		s, err := NewFileStore(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		s, err := NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
