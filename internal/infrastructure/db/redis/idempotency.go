package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/projectdesk/pm-api/internal/pkg/metrics"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps client-supplied idempotency keys to created project IDs.
// Key format: idem:project:<key>
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl falls back to 24h.
func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		metrics.IdempotencyLookupsTotal.WithLabelValues("redis", "miss").Inc()
		return "", false, nil
	}
	if err != nil {
		metrics.IdempotencyLookupsTotal.WithLabelValues("redis", "error").Inc()
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	metrics.IdempotencyLookupsTotal.WithLabelValues("redis", "hit").Inc()
	return id, true, nil
}

// Remember stores the mapping only if the key is new; the first writer wins.
func (s *IdempotencyStore) Remember(ctx context.Context, key, resourceID string) error {
	if err := s.client.SetNX(ctx, s.key(key), resourceID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(k string) string {
	return "idem:project:" + k
}
