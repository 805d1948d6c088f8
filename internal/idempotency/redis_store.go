package idempotency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists processed-update claims.
type Store interface {
	// Claim atomically marks the key as taken for ttl. False means another
	// execution already holds it.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release drops the claim so a failed execution can be retried.
	Release(ctx context.Context, key string) error
}

// RedisStore implements Store on SETNX keys with a TTL, so claims expire on
// their own and need no separate cleanup job.
type RedisStore struct {
	client *redis.Client
	log    *slog.Logger
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, log *slog.Logger) *RedisStore {
	if log == nil {
		log = slog.Default()
	}

	return &RedisStore{
		client: client,
		log:    log,
	}
}

func (s *RedisStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := s.client.SetNX(ctx, claimKey(key), 1, ttl).Result()
	if err != nil {
		s.log.Error("failed to claim idempotency key", slog.String("key", key), slog.Any("error", err))
		return false, err
	}

	return acquired, nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, claimKey(key)).Err(); err != nil {
		s.log.Error("failed to release idempotency key", slog.String("key", key), slog.Any("error", err))
		return err
	}

	return nil
}

func claimKey(key string) string {
	return fmt.Sprintf("idempotency:%s", key)
}
