package db

import (
	"context"
	"time"
)

// Store is the database facade used by the page cache and session repository.
type Store interface {
	Pinger
	KVStore
	Counter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides expiring key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Counter provides atomic counters that expire on their own.
type Counter interface {
	// IncrBy adds val to key and returns the new value.
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	// ExpireNX sets a TTL only if key has none yet.
	ExpireNX(ctx context.Context, key string, ttl time.Duration) error
}
