// Package cache stores rendered diagrams for reuse within one process.
//
// The layout service answers identical requests repeatedly; routing is the
// expensive step, so rendered responses are kept in a bounded in-memory
// [MemoryCache]. The CLI renders once per invocation and uses [NullCache].
//
// Keys are built by a [Keyer] from a hash of the diagram and the options
// that influence its output:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(input), cache.LayoutKeyOpts{Policy: "strict"})
//
// Nothing is written to disk.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the cache. Later calls return [ErrClosed].
	Close() error
}
