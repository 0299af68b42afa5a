package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConsumedTokenStore marks reset-token ids as used so a token cannot be
// replayed within its validity window. Consume reports whether the id
// was fresh; a second call with the same id returns false.
type ConsumedTokenStore interface {
	Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
}

// RedisConsumedStore implements ConsumedTokenStore on Redis with one
// SET NX per token id. The entry's TTL matches the token's remaining
// lifetime, so the set cleans itself up and never grows unbounded.
type RedisConsumedStore struct {
	client *redis.Client
	prefix string
}

// NewRedisConsumedStore wraps the given client. The client may come from
// config.NewRedisClient; callers must not pass nil.
func NewRedisConsumedStore(client *redis.Client) *RedisConsumedStore {
	return &RedisConsumedStore{client: client, prefix: "reset:used"}
}

func (s *RedisConsumedStore) key(tokenID string) string {
	return s.prefix + ":" + tokenID
}

// Consume atomically claims the token id. SET NX succeeds only for the
// first caller; everyone after that sees the id as already consumed.
func (s *RedisConsumedStore) Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Minute // expired tokens are rejected earlier; keep a floor for safety
	}
	return s.client.SetNX(ctx, s.key(tokenID), 1, ttl).Result()
}
