package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("start assigns a stable id", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		assert.False(t, store.IsStarted())
		assert.Empty(t, store.ID())

		require.NoError(t, store.Start(ctx))
		id := store.ID()
		assert.NotEmpty(t, id)

		require.NoError(t, store.Start(ctx))
		assert.Equal(t, id, store.ID())
	})

	t.Run("read returns a copy", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(session.WithData(map[string]any{"a": 1}))
		require.NoError(t, store.Start(ctx))

		data, err := store.Read(ctx)
		require.NoError(t, err)
		data["a"] = 2

		again, err := store.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, again["a"])
	})

	t.Run("close on write ignores writes while closed", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(session.WithCloseOnWrite())
		require.NoError(t, store.Start(ctx))

		require.NoError(t, store.Write(ctx, map[string]any{"a": 1}))
		assert.False(t, store.IsStarted())

		require.NoError(t, store.Write(ctx, map[string]any{"a": 2}))
		data, err := store.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, data["a"])
	})

	t.Run("destroy resets started state", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		require.NoError(t, store.Start(ctx))
		require.NoError(t, store.Write(ctx, map[string]any{"a": 1}))

		require.NoError(t, store.Destroy(ctx))

		assert.False(t, store.IsStarted())
		assert.Empty(t, store.ID())
		data, err := store.Read(ctx)
		require.NoError(t, err)
		assert.Empty(t, data)
	})
}
