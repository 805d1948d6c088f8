package ratelimit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRedisLimiter_AllowsWithinLimit(t *testing.T) {
	limiter := NewRedisLimiter(setupTestRedis(t), testLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.Check(ctx, "user:1", 5, time.Minute)
		assert.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestRedisLimiter_BlocksWhenExceeded(t *testing.T) {
	limiter := NewRedisLimiter(setupTestRedis(t), testLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.Check(ctx, "user:2", 2, time.Minute)
		assert.NoError(t, err)
		if i < 2 {
			assert.True(t, result.Allowed)
		} else {
			assert.False(t, result.Allowed)
		}
	}
}

func TestMemoryLimiter_SlidingWindow(t *testing.T) {
	limiter := NewMemoryLimiter(testLogger())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := limiter.Check(ctx, "user:3", 2, 200*time.Millisecond)
		assert.NoError(t, err)
		assert.True(t, result.Allowed)
	}

	result, err := limiter.Check(ctx, "user:3", 2, 200*time.Millisecond)
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.False(t, result.Allowed)

	time.Sleep(250 * time.Millisecond)

	result, err = limiter.Check(ctx, "user:3", 2, 200*time.Millisecond)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestRules_AdminExempt(t *testing.T) {
	rules := NewRules(
		config.RateLimitConfig{Limit: 20, Window: time.Minute},
		config.AdminConfig{ID: 99},
	)

	assert.True(t, rules.IsExempt(99))
	assert.False(t, rules.IsExempt(1))

	limit, window := rules.PerUserLimit()
	assert.Equal(t, 20, limit)
	assert.Equal(t, time.Minute, window)
}
