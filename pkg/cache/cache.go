// Package cache provides byte-oriented caches for upstream API responses.
//
// The repository data fetcher stores decoded GitHub and npm responses here so
// that repeated runs over the same URL file do not exhaust API rate limits.
// Three backends are available:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for several netscore processes
//   - [NullCache]: caching disabled
//
// Use [Namespace] to scope keys per upstream source.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with an optional TTL.
// A TTL of 0 means the entry does not expire.
//
// Implementations must be safe for concurrent use: the batch runner fetches
// several packages at once through the same cache.
type Cache interface {
	// Get returns the stored payload. hit is false on a miss or an expired entry.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// namespaced prefixes every key before delegating to the wrapped cache.
type namespaced struct {
	inner  Cache
	prefix string
}

// Namespace returns a Cache that prefixes all keys with prefix.
//
//	gh := cache.Namespace(c, "github:")
//	npm := cache.Namespace(c, "npm:")
//
// Namespaces can be chained; prefixes concatenate.
func Namespace(c Cache, prefix string) Cache {
	if c == nil {
		c = NewNullCache()
	}
	if ns, ok := c.(*namespaced); ok {
		return &namespaced{inner: ns.inner, prefix: ns.prefix + prefix}
	}
	return &namespaced{inner: c, prefix: prefix}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return n.inner.Set(ctx, n.prefix+key, data, ttl)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

// Close closes the wrapped cache.
func (n *namespaced) Close() error { return n.inner.Close() }
