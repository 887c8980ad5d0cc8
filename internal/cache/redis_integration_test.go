package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedis(t *testing.T) *Redis {
	t.Helper()

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get connection string")

	r, err := NewRedis(uri)
	require.NoError(t, err)
	t.Cleanup(r.Close)

	return r
}

func TestRedis_Increment(t *testing.T) {
	r := setupRedis(t)
	ctx := context.Background()

	t.Run("counts within a window", func(t *testing.T) {
		key := RateLimitKey("login", "198.51.100.1")

		for want := int64(1); want <= 3; want++ {
			n, ttl, err := r.Increment(ctx, key, time.Minute)
			require.NoError(t, err)
			assert.Equal(t, want, n)
			assert.True(t, ttl > 0 && ttl <= time.Minute)
		}
	})

	t.Run("later increments keep the first expiry", func(t *testing.T) {
		key := RateLimitKey("login", "198.51.100.2")

		_, first, err := r.Increment(ctx, key, time.Minute)
		require.NoError(t, err)
		_, second, err := r.Increment(ctx, key, time.Hour)
		require.NoError(t, err)

		assert.LessOrEqual(t, second, first)
	})

	t.Run("window resets after expiry", func(t *testing.T) {
		key := RateLimitKey("login", "198.51.100.3")

		_, _, err := r.Increment(ctx, key, 50*time.Millisecond)
		require.NoError(t, err)
		time.Sleep(100 * time.Millisecond)

		n, _, err := r.Increment(ctx, key, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, r.Ping(ctx))
	})
}
