// Package idempotency suppresses duplicate Telegram updates. Long polling can
// redeliver an update after a crash, and users double-tap inline buttons; a
// lookup turn spends a credit, so each update key must execute at most once.
package idempotency

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrDuplicate marks an update whose key was already claimed.
var ErrDuplicate = errors.New("update already processed")

// Manager executes an operation at most once per key.
type Manager interface {
	Run(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

type manager struct {
	store Store
	log   *slog.Logger
}

func NewManager(store Store, log *slog.Logger) Manager {
	if log == nil {
		log = slog.Default()
	}

	return &manager{
		store: store,
		log:   log,
	}
}

// Run claims the key, then executes fn. A failed fn releases the claim so the
// update can be retried; duplicates surface as ErrDuplicate. Store errors let
// the update through rather than dropping it.
func (m *manager) Run(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	if fn == nil {
		return errors.New("operation fn cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	claimed, err := m.store.Claim(ctx, key, ttl)
	if err != nil {
		m.log.Warn("idempotency claim failed, executing anyway", slog.String("key", key), slog.Any("error", err))
		return fn(ctx)
	}

	if !claimed {
		return ErrDuplicate
	}

	if err := fn(ctx); err != nil {
		if releaseErr := m.store.Release(ctx, key); releaseErr != nil {
			m.log.Error("failed to release claim after error", slog.String("key", key), slog.Any("error", releaseErr))
		}
		return err
	}

	return nil
}
