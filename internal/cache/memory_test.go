package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC)

	c := NewMemoryCache(2)
	c.now = func() time.Time { return now }

	t.Run("Miss on unknown key", func(t *testing.T) {
		_, err := c.Get(ctx, "unknown")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Hit before expiry", func(t *testing.T) {
		value := []byte(`{"source":"placeholder"}`)
		require.NoError(t, c.Set(ctx, "social:feed", value, time.Hour))

		// Stored values are copies.
		value[0] = 'X'

		got, err := c.Get(ctx, "social:feed")
		require.NoError(t, err)
		assert.Equal(t, `{"source":"placeholder"}`, string(got))
	})

	t.Run("Miss after expiry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Minute))

		now = now.Add(time.Minute)

		_, err := c.Get(ctx, "short")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Zero TTL is not cached", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "nocache", []byte("v"), 0))

		_, err := c.Get(ctx, "nocache")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Least recently used entry is evicted", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "a", []byte("a"), time.Hour))
		require.NoError(t, c.Set(ctx, "b", []byte("b"), time.Hour))
		require.NoError(t, c.Set(ctx, "c", []byte("c"), time.Hour))

		_, err := c.Get(ctx, "a")
		assert.ErrorIs(t, err, ErrCacheMiss)

		got, err := c.Get(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, "c", string(got))
	})

	require.NoError(t, c.Close())
}
