package redis

import (
	"context"
	"testing"
	"time"

	"connector-hub/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewOutcomeCache(client)
	ctx := context.Background()

	key := "stripe:evt_001"

	result, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, result)

	outcome := &domain.WebhookOutcome{
		EventID:   "evt_001",
		EventType: "customer.created",
		Action:    domain.WebhookActionProcessed,
	}
	require.NoError(t, cache.Set(ctx, key, outcome, time.Hour))

	result, err = cache.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, *outcome, *result)
	assert.True(t, s.Exists("webhook:outcome:stripe:evt_001"))
}

func TestOutcomeCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewOutcomeCache(client)
	ctx := context.Background()

	key := "shopify:wh-42"
	require.NoError(t, cache.Set(ctx, key, &domain.WebhookOutcome{EventID: "wh-42"}, time.Second))

	s.FastForward(2 * time.Second)

	result, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, result, "expired key should return nil")
}

func TestOutcomeCache_CorruptValue(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewOutcomeCache(client)

	require.NoError(t, s.Set("webhook:outcome:stripe:evt_bad", "not-json"))

	_, err := cache.Get(context.Background(), "stripe:evt_bad")
	assert.Error(t, err)
}
