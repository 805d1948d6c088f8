package idempotency

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
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

func TestManager_RunsOnce(t *testing.T) {
	client := setupTestRedis(t)
	m := NewManager(NewRedisStore(client, testLogger()), testLogger())
	ctx := context.Background()

	calls := 0
	fn := func(ctx context.Context) error {
		calls++
		return nil
	}

	assert.NoError(t, m.Run(ctx, "update:1", time.Minute, fn))

	err := m.Run(ctx, "update:1", time.Minute, fn)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 1, calls)
}

func TestManager_ReleasesOnFailure(t *testing.T) {
	client := setupTestRedis(t)
	m := NewManager(NewRedisStore(client, testLogger()), testLogger())
	ctx := context.Background()

	boom := errors.New("boom")
	calls := 0

	err := m.Run(ctx, "update:2", time.Minute, func(ctx context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// The failed claim was released, so the retry executes.
	err = m.Run(ctx, "update:2", time.Minute, func(ctx context.Context) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGenerateKey_Deterministic(t *testing.T) {
	assert.Equal(t, GenerateKey("cb", int64(1), 2), GenerateKey("cb", int64(1), 2))
	assert.NotEqual(t, GenerateKey("cb", 1), GenerateKey("cb", 2))
}
