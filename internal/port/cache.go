package port

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value cache. Get returns cache.ErrCacheMiss on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
