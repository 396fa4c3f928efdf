package storage_test

import (
	"context"
	"testing"

	"github.com/ganot/tempus-mcp/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetRemove(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", []byte(`{"a":1}`)))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)

	require.NoError(t, kv.Set(ctx, "k", []byte(`{"a":2}`)))
	got, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), got)

	require.NoError(t, kv.Remove(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Removing an absent key is tolerated.
	require.NoError(t, kv.Remove(ctx, "k"))
}

func TestMemoryCopiesValues(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, kv.Set(ctx, "k", value))
	value[0] = 'X'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	// Mutating the returned slice must not leak into the store either.
	got[0] = 'Y'
	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}
