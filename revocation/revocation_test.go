package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Revoke(ctx, "a", now.Add(time.Minute)))
	require.NoError(t, m.Revoke(ctx, "stale", now.Add(-time.Minute)))

	ok, err := m.Revoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = m.Revoked(ctx, "stale")
	assert.False(t, ok, "already expired tokens need no entry")

	ok, _ = m.Revoked(ctx, "unknown")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = m.Revoked(ctx, "a")
	assert.False(t, ok, "entries lapse with the token")
	assert.Empty(t, m.items)
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	store := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	assert.True(t, mr.Exists("revoked:jti-1"))

	// A second instance sharing redis sees the revocation.
	peer := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ok, err := peer.Revoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	ok, err = peer.Revoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	ctx := context.Background()
	store := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}))

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	mr.Close()

	ok, err := store.Revoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	// Unknown ids may have been revoked by another instance.
	ok, err = store.Revoked(ctx, "jti-2")
	require.Error(t, err)
	assert.False(t, ok)
}
