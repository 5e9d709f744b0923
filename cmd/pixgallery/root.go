package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/config"
	"github.com/kailas-cloud/pixgallery/internal/db"
	dbRedis "github.com/kailas-cloud/pixgallery/internal/db/redis"
	logpkg "github.com/kailas-cloud/pixgallery/internal/logger"
	"github.com/kailas-cloud/pixgallery/internal/metrics"
	"github.com/kailas-cloud/pixgallery/internal/repository/pagecache"
	quotarepo "github.com/kailas-cloud/pixgallery/internal/repository/quota"
	"github.com/kailas-cloud/pixgallery/internal/transport/pixabay"
	galleryuc "github.com/kailas-cloud/pixgallery/internal/usecase/gallery"
	quotauc "github.com/kailas-cloud/pixgallery/internal/usecase/quota"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pixgallery",
		Short: "Search photos on Pixabay and browse them as an infinite gallery",
		Long: `pixgallery searches the Pixabay photo library and renders the results as a
gallery of cards, 40 per page, with a "load more" control while results remain.
It runs as a web server (serve) or prints results to the terminal (search).

Configuration is read from config/<ENV>.yaml (ENV defaults to "local").`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newSearchCmd(), newVersionCmd())
	return root
}

// app is the configuration and logger shared by every command.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
}

func loadApp() (*app, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return &app{env: env, cfg: cfg, logger: logger}, nil
}

// connectStore opens the cache/session store and waits until it answers.
func (a *app) connectStore(ctx context.Context) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      a.cfg.Database.Addrs,
		Password:   a.cfg.Database.Password,
		Standalone: len(a.cfg.Database.Addrs) == 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", a.cfg.Database.Driver, err)
	}

	timeout := time.Duration(a.cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", a.cfg.Database.Driver, err)
	}
	return store, nil
}

// quotaCounterTTL outlives a daily counter so a late write cannot resurrect it.
const quotaCounterTTL = 48 * time.Hour

// buildSearcher assembles the fetch chain: API client, the request quota
// when a daily limit is set, then the page cache when a store is given and
// caching is enabled. store may be nil. The tracker is nil without a quota.
func (a *app) buildSearcher(ctx context.Context, store db.Store) (galleryuc.Searcher, *quotauc.Tracker) {
	metrics.RegisterSearchMetrics()

	var searcher galleryuc.Searcher = pixabay.NewClient(&pixabay.Config{
		APIKey:  a.cfg.Pixabay.APIKey,
		BaseURL: a.cfg.Pixabay.BaseURL,
		Timeout: time.Duration(a.cfg.Pixabay.TimeoutSec) * time.Second,
		Logger:  a.logger,
	})

	var tracker *quotauc.Tracker
	if a.cfg.Quota.DailyRequests > 0 {
		tracker = quotauc.NewTracker(a.cfg.Quota.DailyRequests, quotauc.Action(a.cfg.Quota.Action), a.logger)
		if store != nil {
			tracker.WithStore(ctx, quotarepo.New(store, quotaCounterTTL))
		}
		metrics.QuotaRemaining.Set(float64(tracker.Remaining()))
		searcher = quotauc.NewGuard(searcher, tracker, a.logger)
	}

	if store == nil || !a.cfg.CacheEnabled() {
		return searcher, tracker
	}
	return pagecache.New(
		searcher, store,
		time.Duration(a.cfg.Cache.TTLSec)*time.Second,
		metrics.PageCacheTotal, a.logger,
	), tracker
}
