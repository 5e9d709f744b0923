package pixgallery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/db"
	dbRedis "github.com/kailas-cloud/pixgallery/internal/db/redis"
	"github.com/kailas-cloud/pixgallery/internal/domain/page"
	"github.com/kailas-cloud/pixgallery/internal/domain/session"
	"github.com/kailas-cloud/pixgallery/internal/repository/pagecache"
	"github.com/kailas-cloud/pixgallery/internal/transport/pixabay"
	galleryuc "github.com/kailas-cloud/pixgallery/internal/usecase/gallery"
	healthuc "github.com/kailas-cloud/pixgallery/internal/usecase/health"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultBaseURL          = "https://pixabay.com/api/"
	defaultCacheTTL         = 24 * time.Hour
)

// Внутренние интерфейсы для подмены в тестах.
type galleryUseCase interface {
	Submit(ctx context.Context, s session.Session, rawTerm string, ui galleryuc.UI) session.Session
	LoadMore(ctx context.Context, s session.Session, ui galleryuc.UI) session.Session
	Lookup(ctx context.Context, rawTerm string, pageNum int) (page.Page, error)
}

// Client is the pixgallery SDK entry point.
type Client struct {
	store      db.Store // nil without a page cache
	gallerySvc galleryUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a Client. With WithValkey or WithRedis it also connects the
// page cache; the provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL:  defaultBaseURL,
		cacheTTL: defaultCacheTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.apiKey == "" {
		return nil, errors.New("pixgallery: API key required (use WithAPIKey)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if cfg.driver != "" {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("pixgallery: %s not ready: %w", cfg.driver, err)
		}
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("pixgallery: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("pixgallery: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	var searcher galleryuc.Searcher = pixabay.NewClient(&pixabay.Config{
		APIKey:     cfg.apiKey,
		BaseURL:    cfg.baseURL,
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
	})

	c := &Client{obs: obs}
	if store != nil {
		searcher = pagecache.New(searcher, store, cfg.cacheTTL, nil, zap.NewNop())
		c.store = store
		c.healthSvc = healthuc.New(store)
	}
	c.gallerySvc = galleryuc.New(searcher, zap.NewNop())
	return c
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search fetches a single page of results for term.
func (c *Client) Search(ctx context.Context, term string, pageNum int) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	p, err := c.gallerySvc.Lookup(ctx, term, pageNum)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return searchResultFromPage(term, pageNum, &p), nil
}

// NewGallery starts an empty gallery backed by this client.
// A Gallery is not safe for concurrent use.
func (c *Client) NewGallery() *Gallery {
	return &Gallery{svc: c.gallerySvc, obs: c.obs, state: session.New()}
}
