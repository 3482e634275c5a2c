// Package memory holds process-local fallbacks used when Redis is not configured.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/projectdesk/pm-api/internal/pkg/metrics"
)

const defaultTTL = 24 * time.Hour

// IdempotencyStore keeps idempotency keys in memory. Keys are lost on restart
// and not shared between replicas.
type IdempotencyStore struct {
	c *gocache.Cache
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &IdempotencyStore{c: gocache.New(ttl, time.Minute)}
}

func (s *IdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		metrics.IdempotencyLookupsTotal.WithLabelValues("memory", "miss").Inc()
		return "", false, nil
	}
	metrics.IdempotencyLookupsTotal.WithLabelValues("memory", "hit").Inc()
	id, _ := v.(string)
	return id, true, nil
}

// Remember keeps the first mapping stored for key.
func (s *IdempotencyStore) Remember(_ context.Context, key, resourceID string) error {
	// Add returns an error for an existing key; the stored mapping is kept.
	_ = s.c.Add(key, resourceID, gocache.DefaultExpiration)
	return nil
}
