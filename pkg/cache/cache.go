// Package cache stores validation reports and rendered artifacts keyed by
// passage content.
//
// # Backends
//
//   - [FileCache] keeps entries as JSON files under a directory (CLI default)
//   - [RedisCache] shares entries between server instances
//   - [NullCache] disables caching
//
// # Keys
//
// A [Keyer] turns a passage hash plus the options that influence the result
// into a cache key. [ScopedKeyer] prefixes every key, which lets several
// deployments share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes for cached entries.
const (
	TTLReport   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
