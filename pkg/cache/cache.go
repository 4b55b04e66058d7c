// Package cache provides content-addressed caching of computed plans.
//
// Planning is deterministic, so a plan can be cached by the hash of the
// scan bytes plus the options that shaped it. Backends:
//   - file: directory-based cache for CLI usage
//   - redis: shared cache for multi-instance server deployments
//   - null: no-op cache for tests or when caching is disabled
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PlanKey derives the cache key for a planning run from the raw scan
// bytes and the options that influence the output.
func PlanKey(scanData []byte, maxUnitSize, parallelism int) string {
	return hashKey("plan", string(scanData), maxUnitSize, parallelism)
}
