package cache

import (
	"context"
	"sync/atomic"
	"time"
)

// NullCache stores nothing: every lookup misses, so each CLI run lays out
// and renders its diagram from scratch. After Close it reports [ErrClosed]
// like [MemoryCache].
type NullCache struct {
	closed atomic.Bool
}

// NewNullCache returns an open NullCache.
func NewNullCache() *NullCache {
	return &NullCache{}
}

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.closed.Load() {
		return nil, false, ErrClosed
	}
	return nil, false, nil
}

// Set discards data.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Len is always 0.
func (c *NullCache) Len() int { return 0 }

func (c *NullCache) Close() error {
	c.closed.Store(true)
	return nil
}

var _ Cache = (*NullCache)(nil)
