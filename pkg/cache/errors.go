package cache

import "errors"

// ErrClosed is returned by operations on a closed [MemoryCache] or [NullCache].
var ErrClosed = errors.New("cache closed")
