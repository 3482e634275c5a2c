package ports

import "context"

// IdempotencyStore remembers which resource a client-supplied idempotency key
// produced, so a replayed create returns the original resource.
type IdempotencyStore interface {
	// Lookup returns the stored resource ID and whether the key was seen.
	Lookup(ctx context.Context, key string) (string, bool, error)
	Remember(ctx context.Context, key, resourceID string) error
}
