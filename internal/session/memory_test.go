package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.SetMode(ctx, 123, ModeMobile)
	assert.NoError(t, err)

	mode, err := store.GetMode(ctx, 123)
	assert.NoError(t, err)
	assert.Equal(t, ModeMobile, mode)
}

func TestMemoryStore_LastWriteWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.SetMode(ctx, 123, ModeMobile))
	assert.NoError(t, store.SetMode(ctx, 123, ModeGST))

	mode, err := store.GetMode(ctx, 123)
	assert.NoError(t, err)
	assert.Equal(t, ModeGST, mode)
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	store := NewMemoryStore()

	mode, err := store.GetMode(context.Background(), 999)
	assert.Equal(t, ModeNone, mode)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ClearMode(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.SetMode(ctx, 456, ModeIFSC))
	assert.NoError(t, store.ClearMode(ctx, 456))

	mode, err := store.GetMode(ctx, 456)
	assert.Equal(t, ModeNone, mode)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DropIdle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.SetMode(ctx, 1, ModeMobile))
	assert.NoError(t, store.SetMode(ctx, 2, ModePincode))

	// Nothing is older than a cutoff in the past.
	assert.Equal(t, 0, store.DropIdle(time.Now().Add(-time.Minute)))

	// Everything is older than a cutoff in the future.
	assert.Equal(t, 2, store.DropIdle(time.Now().Add(time.Minute)))

	_, err := store.GetMode(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMode_Valid(t *testing.T) {
	for _, mode := range []Mode{ModeMobile, ModeGST, ModeIFSC, ModePincode, ModeVehicle, ModeIMEI} {
		assert.True(t, mode.Valid(), "mode %q should be valid", mode)
	}

	assert.False(t, ModeNone.Valid())
	assert.False(t, Mode("passport").Valid())
}
