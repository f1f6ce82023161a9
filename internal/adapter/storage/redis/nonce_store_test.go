package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonceStore_CheckAndSet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewNonceStore(client)
	ctx := context.Background()

	t.Run("new nonce is accepted", func(t *testing.T) {
		ok, err := store.CheckAndSet(ctx, "oauth:shopify", "n-1", 10*time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("replayed nonce is rejected", func(t *testing.T) {
		ok, err := store.CheckAndSet(ctx, "oauth:shopify", "n-1", 10*time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("scopes are independent", func(t *testing.T) {
		ok, err := store.CheckAndSet(ctx, "oauth:google_analytics", "n-1", 10*time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestNonceStore_CheckAndSet_ExpiredNonce(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewNonceStore(client)
	ctx := context.Background()

	ok, err := store.CheckAndSet(ctx, "oauth:stripe", "n-exp", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	s.FastForward(2 * time.Second)

	ok, err = store.CheckAndSet(ctx, "oauth:stripe", "n-exp", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired nonce should be accepted again")
}

func TestNonceStore_CheckAndSet_RedisDown(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewNonceStore(client)
	s.Close()

	_, err := store.CheckAndSet(context.Background(), "oauth:shopify", "n-2", time.Minute)
	assert.Error(t, err)
}

func TestNonceStore_KeyLayout(t *testing.T) {
	s := miniredis.RunT(t)
	store := NewNonceStore(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))

	ok, err := store.CheckAndSet(context.Background(), "oauth", "abc", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, s.Exists("chub:nonce:oauth:abc"))
	assert.Equal(t, time.Minute, s.TTL("chub:nonce:oauth:abc"))
}
