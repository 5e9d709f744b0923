// Package pagecache caches fetched result pages in the key-value store.
package pagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/db"
	"github.com/kailas-cloud/pixgallery/internal/domain"
	"github.com/kailas-cloud/pixgallery/internal/domain/page"
)

var cacheKeyPrefix = domain.KeyPrefix + "page_cache:"

// fetcher is the wrapped page source.
type fetcher interface {
	FetchPage(ctx context.Context, term string, pageNum int) (page.Page, error)
}

// store is the consumer interface for the page cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedFetcher serves result pages from the store and falls back to the inner fetcher.
type CachedFetcher struct {
	inner      fetcher
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner fetcher,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedFetcher {
	return &CachedFetcher{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// FetchPage returns a cached page or calls the inner fetcher.
// Errors from the inner fetcher are returned as-is and never cached.
// Empty pages are cached like any other.
func (c *CachedFetcher) FetchPage(ctx context.Context, term string, pageNum int) (page.Page, error) {
	key := cacheKey(term, pageNum)

	if p, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return p, nil
	}

	c.incCache("miss")

	p, err := c.inner.FetchPage(ctx, term, pageNum)
	if err != nil {
		return page.Page{}, fmt.Errorf("fetch page: %w", err)
	}

	c.putToCache(ctx, key, p)
	return p, nil
}

func (c *CachedFetcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(term string, pageNum int) string {
	h := sha256.Sum256([]byte(term + "|" + strconv.Itoa(pageNum)))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedFetcher) getFromCache(ctx context.Context, key string) (page.Page, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached page", zap.String("key", key), zap.Error(err))
		}
		return page.Page{}, false
	}
	if len(data) == 0 {
		return page.Page{}, false
	}

	var dto pageDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		c.logger.Warn("Failed to parse cached page", zap.String("key", key), zap.Error(err))
		return page.Page{}, false
	}

	return dto.toDomain(), true
}

func (c *CachedFetcher) putToCache(ctx context.Context, key string, p page.Page) {
	data, err := json.Marshal(fromDomain(p))
	if err != nil {
		c.logger.Warn("Failed to encode page for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache page", zap.String("key", key), zap.Error(err))
	}
}
