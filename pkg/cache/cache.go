// Package cache memoizes timeline layouts.
//
// Layout computation is cheap, but interactive callers redraw on every
// filter or zoom change and often ask for the same layout again. A [Cache]
// stores serialized layouts under keys derived from the request hash so a
// repeated request skips the work entirely.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, used by the CLI.
//   - [RedisCache]: shared cache for several processes.
//   - [NullCache]: caching disabled.
//
// # Keys
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the request hash together
// with [LayoutKeyOpts]; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLLayout is how long computed layouts are kept.
const TTLLayout = 7 * 24 * time.Hour
