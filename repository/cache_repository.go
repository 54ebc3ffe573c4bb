package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized simulations by key. A zero ttl keeps
// the entry until evicted.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
