package cache

import (
	"context"
	"time"
)

// Cache is the contract of the read cache layer.
// Implementations: Redis (infrastructure/cache), in-memory for tests.
type Cache interface {
	// Get loads key and unmarshals it into dest
	// Returns: (found bool, error)
	// - found = true: cache hit, dest populated
	// - found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with TTL; non-string values are JSON encoded
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
