package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sniper-agent/internal/storage"
)

func TestPositionStore_OpenAndGetOpen(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPositionStore(pool)
	ctx := context.Background()

	err := store.Open(ctx, "Mint111", 1000, 20, 1700000000000)
	require.NoError(t, err)

	p, err := store.GetOpen(ctx, "Mint111")
	require.NoError(t, err)

	assert.Equal(t, "Mint111", p.Address)
	assert.Equal(t, uint64(1000), p.EntryAmount)
	assert.Equal(t, 20, p.MoonbagPercent)
	assert.Equal(t, int64(1700000000000), p.OpenedAt)
	assert.Nil(t, p.ClosedAt)
	assert.True(t, p.IsOpen())
}

func TestPositionStore_OpenDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPositionStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Open(ctx, "Mint111", 1000, 20, 1700000000000))

	err := store.Open(ctx, "Mint111", 2000, 20, 1700000001000)
	assert.ErrorIs(t, err, storage.ErrDuplicatePosition)
}

func TestPositionStore_CloseAndReopen(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPositionStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Open(ctx, "Mint111", 1000, 20, 1700000000000))
	require.NoError(t, store.Close(ctx, "Mint111", 1700000010000))

	has, err := store.HasOpen(ctx, "Mint111")
	require.NoError(t, err)
	assert.False(t, has)

	// A closed position does not block a new one.
	require.NoError(t, store.Open(ctx, "Mint111", 500, 10, 1700000020000))

	p, err := store.GetOpen(ctx, "Mint111")
	require.NoError(t, err)
	assert.Equal(t, uint64(500), p.EntryAmount)
}

func TestPositionStore_CloseWithoutOpen(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPositionStore(pool)

	err := store.Close(context.Background(), "Mint111", 1700000000000)
	assert.ErrorIs(t, err, storage.ErrNoOpenPosition)
}

func TestPositionStore_GetOpenNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPositionStore(pool)

	_, err := store.GetOpen(context.Background(), "Mint111")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
