// Package cache provides pluggable byte caching for remote-service
// responses.
//
// Three backends implement the same interface: FileCache for the CLI,
// RedisCache for multi-instance server deployments, and NullCache to
// disable caching entirely. Keys are produced by a Keyer so the validation
// and share clients stay ignorant of key layout.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
