package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const noncePrefix = "chub:nonce:"

// NonceStore burns single-use values in Redis. OAuth callbacks claim the
// nonce carried in their state token, so a callback URL works once.
type NonceStore struct {
	client *goredis.Client
}

// NewNonceStore creates a new Redis-backed nonce store.
func NewNonceStore(client *goredis.Client) *NonceStore {
	return &NonceStore{client: client}
}

// CheckAndSet claims nonce within scope for ttl. It reports false when the
// nonce was already claimed and has not yet expired.
func (s *NonceStore) CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error) {
	claimed, err := s.client.SetNX(ctx, nonceKey(scope, nonce), time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim nonce %s: %w", scope, err)
	}
	return claimed, nil
}

func nonceKey(scope, nonce string) string {
	return noncePrefix + scope + ":" + nonce
}
