package quota

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/domain/page"
	"github.com/kailas-cloud/pixgallery/internal/metrics"
)

// fetcher is the consumer interface for the wrapped client.
type fetcher interface {
	FetchPage(ctx context.Context, term string, pageNum int) (page.Page, error)
}

// Checker is the local interface for quota enforcement.
type Checker interface {
	Check(ctx context.Context) error
	Record(n int64)
	Remaining() int64
}

// Guard enforces the request quota in front of the image-search client.
// Place it under the page cache so cache hits are free.
type Guard struct {
	inner   fetcher
	checker Checker
	logger  *zap.Logger
}

// NewGuard wraps inner with quota enforcement.
func NewGuard(inner fetcher, checker Checker, logger *zap.Logger) *Guard {
	return &Guard{inner: inner, checker: checker, logger: logger}
}

// FetchPage checks the quota, delegates to the inner client and counts the request.
func (g *Guard) FetchPage(ctx context.Context, term string, pageNum int) (page.Page, error) {
	if err := g.checker.Check(ctx); err != nil {
		metrics.QuotaRejectedTotal.Inc()
		g.logger.Error("Request quota exceeded",
			zap.String("term", term),
			zap.Int("page", pageNum),
			zap.Error(err),
		)
		return page.Page{}, fmt.Errorf("quota check: %w", err)
	}

	p, err := g.inner.FetchPage(ctx, term, pageNum)

	// A failed request still counts against the upstream limit.
	g.checker.Record(1)
	metrics.QuotaRemaining.Set(float64(g.checker.Remaining()))

	if err != nil {
		return page.Page{}, err
	}
	return p, nil
}
