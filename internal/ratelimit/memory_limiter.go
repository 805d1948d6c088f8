package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type window struct {
	hits []time.Time
}

// MemoryLimiter is the in-memory Limiter used when no Redis backend is
// configured. Single-process only.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	log     *slog.Logger
}

// NewMemoryLimiter returns an in-memory limiter implementation.
func NewMemoryLimiter(log *slog.Logger) *MemoryLimiter {
	if log == nil {
		log = slog.Default()
	}

	return &MemoryLimiter{
		windows: make(map[string]*window),
		log:     log,
	}
}

var _ Limiter = (*MemoryLimiter)(nil)

// Check enforces a sliding-window limit for the provided key.
func (m *MemoryLimiter) Check(ctx context.Context, key string, limit int, windowSize time.Duration) (*Result, error) {
	now := time.Now()
	windowStart := now.Add(-windowSize)

	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows[key]
	if w == nil {
		w = &window{hits: make([]time.Time, 0, 8)}
		m.windows[key] = w
	}

	w.hits = dropBefore(w.hits, windowStart)
	count := len(w.hits)

	allowed := count < limit
	if allowed {
		w.hits = append(w.hits, now)
		count++
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	result := &Result{
		Allowed:   allowed,
		Remaining: remaining,
		ResetAt:   windowStart.Add(windowSize),
	}

	if !allowed {
		return result, ErrLimitExceeded
	}

	return result, nil
}

// Cleanup removes windows that have been inactive for more than maxAge.
func (m *MemoryLimiter) Cleanup(maxAge time.Duration) {
	if maxAge <= 0 {
		return
	}

	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, w := range m.windows {
		if len(w.hits) == 0 || w.hits[len(w.hits)-1].Before(cutoff) {
			delete(m.windows, key)
		}
	}
}

func dropBefore(hits []time.Time, cutoff time.Time) []time.Time {
	firstIdx := 0
	for firstIdx < len(hits) && hits[firstIdx].Before(cutoff) {
		firstIdx++
	}

	if firstIdx == 0 {
		return hits
	}
	if firstIdx >= len(hits) {
		return hits[:0]
	}

	copy(hits, hits[firstIdx:])
	return hits[:len(hits)-firstIdx]
}
