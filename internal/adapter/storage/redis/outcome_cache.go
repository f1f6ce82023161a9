package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"connector-hub/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// OutcomeCache implements ports.WebhookOutcomeCache. Keys are
// "<provider>:<providerEventId>" and values the JSON outcome of a completed
// inbound event, so redeliveries skip the database round trip.
type OutcomeCache struct {
	client *goredis.Client
	prefix string
}

// NewOutcomeCache creates a Redis-backed outcome cache.
func NewOutcomeCache(client *goredis.Client) *OutcomeCache {
	return &OutcomeCache{
		client: client,
		prefix: "webhook:outcome:",
	}
}

// Get returns the cached outcome, or nil, nil when absent.
func (c *OutcomeCache) Get(ctx context.Context, key string) (*domain.WebhookOutcome, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis outcome get: %w", err)
	}

	var out domain.WebhookOutcome
	if err := json.Unmarshal(val, &out); err != nil {
		return nil, fmt.Errorf("decode cached outcome: %w", err)
	}
	return &out, nil
}

// Set stores an outcome with TTL.
func (c *OutcomeCache) Set(ctx context.Context, key string, outcome *domain.WebhookOutcome, ttl time.Duration) error {
	val, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis outcome set: %w", err)
	}
	return nil
}
