package cache

import (
	"context"
	"time"
)

// QuoteCache stores serialized serviceability quotes keyed by the shipment
// fingerprint. Rate tables change rarely, so identical shipments within the
// TTL window can be answered without re-pricing every lane.
type QuoteCache interface {
	// Get returns the cached payload for the key, and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the payload under the key with a TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Delete removes the key if present.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
