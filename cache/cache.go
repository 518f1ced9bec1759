// Package cache defines the response cache used by the ipmeta Handler and
// ships two implementations: a bounded in-memory LRU with per-entry TTL
// (the default) and a Redis-backed cache for sharing entries across
// processes.
package cache

import "time"

// Defaults applied by implementations when Options fields are zero.
const (
	DefaultMaxSize = 4096
	DefaultTTL     = 24 * time.Hour
)

// Cache stores raw (pre-enrichment) API responses keyed by lookup key.
// The empty key is valid: it holds the caller's own-address entry.
//
// Implementations must be safe for concurrent use; the Handler performs no
// locking of its own.
type Cache interface {
	// Contains reports whether a live (non-expired) entry exists for key.
	Contains(key string) bool

	// Get returns the entry for key. The second return value is false when
	// the key is absent or its entry has expired.
	Get(key string) (map[string]any, bool)

	// Set stores value under key, replacing any existing entry and
	// resetting its TTL.
	Set(key string, value map[string]any)
}

// Options configures the default cache implementation.
type Options struct {
	// MaxSize is the maximum number of entries; the least recently used
	// entry is evicted when an insert would exceed it. Zero means
	// DefaultMaxSize.
	MaxSize int

	// TTL is how long an entry stays valid after it was last set. Zero
	// means DefaultTTL.
	TTL time.Duration
}

// withDefaults fills in zero fields.
func (o Options) withDefaults() Options {
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	return o
}
