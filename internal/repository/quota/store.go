package quota

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/pixgallery/internal/db"
)

// store is the consumer interface for quota counters.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	ExpireNX(ctx context.Context, key string, ttl time.Duration) error
}

// Store persists request counters (INCRBY + EXPIRE NX).
type Store struct {
	store store
	ttl   time.Duration
}

// New creates a quota store. ttl should outlive the counting window
// (48h for daily keys).
func New(s store, ttl time.Duration) *Store {
	return &Store{store: s, ttl: ttl}
}

// IncrBy atomically increments key and makes sure it expires.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	n, err := s.store.IncrBy(ctx, key, val)
	if err != nil {
		return fmt.Errorf("quota INCRBY %s: %w", key, err)
	}

	// First increment creates the key; later ones must not push the TTL out.
	if n == val {
		if err := s.store.ExpireNX(ctx, key, s.ttl); err != nil {
			return fmt.Errorf("quota EXPIRE %s: %w", key, err)
		}
	}
	return nil
}

// Get returns the counter value, 0 when the key does not exist.
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("quota GET %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("quota GET %s parse: %w", key, err)
	}
	return val, nil
}
