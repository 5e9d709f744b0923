// Package quota caps the number of upstream image-search requests per UTC day.
package quota

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/domain"
)

// Action defines behavior when the quota is used up.
type Action string

const (
	// ActionWarn logs a warning but lets the request through.
	ActionWarn Action = "warn"
	// ActionReject fails the request with domain.ErrQuotaExceeded.
	ActionReject Action = "reject"
)

// Store persists request counters. IncrBy may be called repeatedly.
type Store interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Get(ctx context.Context, key string) (int64, error)
}

// Tracker counts requests in memory with optional write-behind persistence.
// Check never touches the store.
type Tracker struct {
	mu        sync.Mutex
	used      int64
	limit     int64
	action    Action
	lastReset time.Time
	store     Store
	logger    *zap.Logger
	now       func() time.Time
}

// NewTracker creates a tracker allowing limit requests per day. Zero means unlimited.
func NewTracker(limit int64, action Action, logger *zap.Logger) *Tracker {
	t := &Tracker{
		limit:  limit,
		action: action,
		logger: logger,
		now:    time.Now,
	}
	t.lastReset = truncateToDay(t.now().UTC())
	return t
}

// WithStore attaches a persistence store and loads today's counter.
func (t *Tracker) WithStore(ctx context.Context, store Store) *Tracker {
	t.store = store

	t.mu.Lock()
	defer t.mu.Unlock()

	key := t.dailyKey(t.now().UTC())
	val, err := store.Get(ctx, key)
	if err != nil {
		t.logger.Warn("Failed to load request quota from store", zap.Error(err))
		return t
	}
	t.used = val
	t.logger.Info("Request quota loaded from store",
		zap.Int64("used", t.used),
		zap.Int64("limit", t.limit),
	)
	return t
}

func (t *Tracker) dailyKey(at time.Time) string {
	return fmt.Sprintf("%squota:pixabay:daily:%s", domain.KeyPrefix, at.Format("2006-01-02"))
}

// Check reports whether another request is allowed.
func (t *Tracker) Check(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resetIfNeeded()
	if t.limit <= 0 || t.used < t.limit {
		return nil
	}

	if t.action == ActionReject {
		return domain.ErrQuotaExceeded
	}

	t.logger.Warn("Request quota exceeded",
		zap.Int64("used", t.used),
		zap.Int64("limit", t.limit),
	)
	return nil
}

// Record counts n requests and writes them behind to the store.
func (t *Tracker) Record(n int64) {
	t.mu.Lock()
	t.resetIfNeeded()
	t.used += n
	store := t.store
	key := t.dailyKey(t.now().UTC())
	t.mu.Unlock()

	if store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := store.IncrBy(ctx, key, n); err != nil {
		t.logger.Warn("Failed to persist request quota", zap.String("key", key), zap.Error(err))
	}
}

// Remaining returns requests left today, -1 if unlimited.
func (t *Tracker) Remaining() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resetIfNeeded()
	if t.limit <= 0 {
		return -1
	}
	if rem := t.limit - t.used; rem > 0 {
		return rem
	}
	return 0
}

// Used returns requests made today.
func (t *Tracker) Used() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNeeded()
	return t.used
}

// Limit returns the daily cap.
func (t *Tracker) Limit() int64 { return t.limit }

func (t *Tracker) resetIfNeeded() {
	today := truncateToDay(t.now().UTC())
	if today.After(t.lastReset) {
		t.used = 0
		t.lastReset = today
	}
}

func truncateToDay(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
}
