package cache

import (
	"context"
	"time"
)

// Cache is the read-cache port: values are opaque bytes with an absolute
// expiration. The zero TTL means no expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// Locker guards read-modify-write sequences on a single entity. Release is
// token-checked so a holder cannot release a lock it lost to expiry.
type Locker interface {
	AcquireLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, token string) error
}
