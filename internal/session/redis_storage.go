package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const modeKeyPattern = "user:mode:%d"

// KV is the slice of the redis client the session store needs. Satisfied by
// both the plain and the metrics-instrumented client wrappers.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisStore persists lookup modes in Redis. Selectable for multi-replica
// deployments where the in-memory default would split state.
type RedisStore struct {
	kv  KV
	ttl time.Duration
	log *slog.Logger
}

// NewRedisStore initializes a Redis-backed Store implementation.
func NewRedisStore(kv KV, ttl time.Duration, log *slog.Logger) *RedisStore {
	if log == nil {
		log = slog.Default()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &RedisStore{
		kv:  kv,
		ttl: ttl,
		log: log,
	}
}

// SetMode saves the mode record with the configured TTL.
func (s *RedisStore) SetMode(ctx context.Context, userID int64, mode Mode) error {
	record := Record{
		UserID:    userID,
		Mode:      mode,
		UpdatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		s.log.Error("failed to encode session", "user_id", userID, "error", err)
		return err
	}

	if err := s.kv.Set(ctx, redisModeKey(userID), data, s.ttl); err != nil {
		s.log.Error("failed to save session in redis", "user_id", userID, "error", err)
		return err
	}

	return nil
}

// GetMode returns the stored mode or ErrNotFound when absent.
func (s *RedisStore) GetMode(ctx context.Context, userID int64) (Mode, error) {
	data, err := s.kv.Get(ctx, redisModeKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ModeNone, ErrNotFound
		}

		s.log.Error("failed to get session from redis", "user_id", userID, "error", err)
		return ModeNone, err
	}

	var record Record
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		s.log.Error("failed to decode session", "user_id", userID, "error", err)
		return ModeNone, err
	}

	return record.Mode, nil
}

// ClearMode removes the stored mode for the given user.
func (s *RedisStore) ClearMode(ctx context.Context, userID int64) error {
	if err := s.kv.Delete(ctx, redisModeKey(userID)); err != nil {
		s.log.Error("failed to clear session", "user_id", userID, "error", err)
		return err
	}

	return nil
}

func redisModeKey(userID int64) string {
	return fmt.Sprintf(modeKeyPattern, userID)
}
