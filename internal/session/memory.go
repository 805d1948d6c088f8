package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps lookup modes in process memory. This is the default
// backend: sessions do not survive a restart, matching the transient nature
// of a half-finished lookup.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int64]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[int64]*Record),
	}
}

// SetMode stores the mode, overwriting any previous selection.
func (s *MemoryStore) SetMode(ctx context.Context, userID int64, mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[userID] = &Record{
		UserID:    userID,
		Mode:      mode,
		UpdatedAt: time.Now().UTC(),
	}

	return nil
}

// GetMode returns the stored mode or ErrNotFound.
func (s *MemoryStore) GetMode(ctx context.Context, userID int64) (Mode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[userID]
	if !ok {
		return ModeNone, ErrNotFound
	}

	return record.Mode, nil
}

// ClearMode removes the stored mode for the user.
func (s *MemoryStore) ClearMode(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, userID)
	return nil
}

// DropIdle removes sessions untouched since cutoff and reports how many were
// dropped. Used by the cleaner; redis-backed sessions expire via TTL instead.
func (s *MemoryStore) DropIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for userID, record := range s.records {
		if record.UpdatedAt.Before(cutoff) {
			delete(s.records, userID)
			dropped++
		}
	}

	return dropped
}
