package session

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner periodically drops idle in-memory sessions so an abandoned mode
// selection does not pin memory forever. Redis-backed sessions expire via
// key TTL and do not need sweeping.
type Cleaner struct {
	store    *MemoryStore
	log      *slog.Logger
	ttl      time.Duration
	interval time.Duration
}

// NewCleaner constructs a Cleaner instance.
func NewCleaner(store *MemoryStore, log *slog.Logger, ttl, interval time.Duration) *Cleaner {
	if log == nil {
		log = slog.Default()
	}

	return &Cleaner{
		store:    store,
		log:      log,
		ttl:      ttl,
		interval: interval,
	}
}

// Run starts the sweep loop until the context is cancelled.
func (c *Cleaner) Run(ctx context.Context) {
	if c == nil || c.store == nil || c.interval <= 0 || c.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if c.log != nil {
				c.log.Info("session cleaner stopped")
			}
			return
		case <-ticker.C:
			if dropped := c.store.DropIdle(time.Now().Add(-c.ttl)); dropped > 0 {
				c.log.Info("dropped idle sessions", slog.Int("count", dropped))
			}
		}
	}
}
