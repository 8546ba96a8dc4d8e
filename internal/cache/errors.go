package cache

import "errors"

var (
	// ErrCacheMiss means the key is absent or its TTL has passed.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable wraps Redis transport failures.
	ErrCacheUnavailable = errors.New("cache backend unavailable")

	// ErrInvalidValue means a stored value could not be encoded or decoded.
	ErrInvalidValue = errors.New("cache value could not be decoded")
)
