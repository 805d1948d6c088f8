package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	pkgredis "github.com/AbdulBotz/nagi-osint-bot/pkg/redis"
)

func setupTestRedis(t *testing.T) (*pkgredis.Client, func()) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	return &pkgredis.Client{Client: client}, func() {
		_ = client.Close()
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRedisStore_SetAndGet(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	t.Cleanup(cleanup)

	store := NewRedisStore(client, time.Hour, testLogger())
	ctx := context.Background()

	err := store.SetMode(ctx, 123, ModeVehicle)
	assert.NoError(t, err)

	mode, err := store.GetMode(ctx, 123)
	assert.NoError(t, err)
	assert.Equal(t, ModeVehicle, mode)
}

func TestRedisStore_GetNotFound(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	t.Cleanup(cleanup)

	store := NewRedisStore(client, time.Hour, testLogger())

	mode, err := store.GetMode(context.Background(), 999)
	assert.Equal(t, ModeNone, mode)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_ClearMode(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	t.Cleanup(cleanup)

	store := NewRedisStore(client, time.Hour, testLogger())
	ctx := context.Background()

	assert.NoError(t, store.SetMode(ctx, 456, ModeIMEI))
	assert.NoError(t, store.ClearMode(ctx, 456))

	mode, err := store.GetMode(ctx, 456)
	assert.Equal(t, ModeNone, mode)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Overwrite(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	t.Cleanup(cleanup)

	store := NewRedisStore(client, time.Hour, testLogger())
	ctx := context.Background()

	assert.NoError(t, store.SetMode(ctx, 7, ModeMobile))
	assert.NoError(t, store.SetMode(ctx, 7, ModePincode))

	mode, err := store.GetMode(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, ModePincode, mode)
}
