package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sniper-agent/internal/storage"
)

func TestCandidateStore_UpsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCandidateStore(pool)
	ctx := context.Background()

	err := store.Upsert(ctx, "Mint111", []string{"WIF"}, "caller1", 1700000000000)
	require.NoError(t, err)

	c, err := store.Get(ctx, "Mint111")
	require.NoError(t, err)

	assert.Equal(t, "Mint111", c.Address)
	assert.Equal(t, []string{"WIF"}, c.Symbols)
	assert.Equal(t, []string{"caller1"}, c.SourceAccounts)
	assert.Equal(t, int64(1700000000000), c.FirstSeenAt)
	assert.Equal(t, int64(1700000000000), c.CreatedAt)
}

func TestCandidateStore_UpsertMergesWithoutDuplicates(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCandidateStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "Mint111", []string{"WIF"}, "caller1", 1700000000000))
	require.NoError(t, store.Upsert(ctx, "Mint111", []string{"WIF", "BONK"}, "caller2", 1700000005000))

	c, err := store.Get(ctx, "Mint111")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"WIF", "BONK"}, c.Symbols)
	assert.ElementsMatch(t, []string{"caller1", "caller2"}, c.SourceAccounts)
	// First sighting wins for timestamps.
	assert.Equal(t, int64(1700000000000), c.FirstSeenAt)
}

func TestCandidateStore_UpsertIdempotent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCandidateStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "Mint111", []string{"WIF"}, "caller1", 1700000000000))
	require.NoError(t, store.Upsert(ctx, "Mint111", []string{"WIF"}, "caller1", 1700000001000))

	c, err := store.Get(ctx, "Mint111")
	require.NoError(t, err)

	assert.Equal(t, []string{"WIF"}, c.Symbols)
	assert.Equal(t, []string{"caller1"}, c.SourceAccounts)
}

func TestCandidateStore_GetNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCandidateStore(pool)

	_, err := store.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCandidateStore_Exists(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCandidateStore(pool)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "Mint111")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Upsert(ctx, "Mint111", nil, "caller1", 1700000000000))

	exists, err = store.Exists(ctx, "Mint111")
	require.NoError(t, err)
	assert.True(t, exists)
}
