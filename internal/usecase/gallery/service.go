package gallery

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/domain"
	domgallery "github.com/kailas-cloud/pixgallery/internal/domain/gallery"
	"github.com/kailas-cloud/pixgallery/internal/domain/notice"
	"github.com/kailas-cloud/pixgallery/internal/domain/page"
	"github.com/kailas-cloud/pixgallery/internal/domain/pagination"
	"github.com/kailas-cloud/pixgallery/internal/domain/query"
	"github.com/kailas-cloud/pixgallery/internal/domain/session"
	"github.com/kailas-cloud/pixgallery/internal/logger"
	"github.com/kailas-cloud/pixgallery/internal/metrics"
)

// scrollCards is how far the view scrolls after a later page is appended.
const scrollCards = 2

// Service runs the search / load-more cycle against an explicit session.
type Service struct {
	searcher Searcher
	logger   *zap.Logger
}

// New creates a gallery service. logger is the fallback when the context carries none.
func New(searcher Searcher, logger *zap.Logger) *Service {
	return &Service{searcher: searcher, logger: logger}
}

// Submit starts a new search for rawTerm. A blank term is ignored and s is
// returned untouched. On a failed fetch the generic failure notice is shown
// and s is returned untouched, old gallery included.
func (svc *Service) Submit(ctx context.Context, s session.Session, rawTerm string, ui UI) session.Session {
	term, ok := query.NormalizeTerm(rawTerm)
	if !ok {
		return s
	}

	q := query.Reset(term)
	p, err := svc.searcher.FetchPage(ctx, q.Term(), q.Page())
	if err != nil {
		svc.fail(ctx, q, err, ui)
		return s
	}

	ui.Reset()
	return svc.apply(q, domgallery.Container{}, 0, p, ui)
}

// LoadMore fetches the next page of the current search. It is a no-op
// unless more results are available.
func (svc *Service) LoadMore(ctx context.Context, s session.Session, ui UI) session.Session {
	if s.Status() != pagination.MoreAvailable {
		return s
	}

	q := s.Query().NextPage()
	p, err := svc.searcher.FetchPage(ctx, q.Term(), q.Page())
	if err != nil {
		svc.fail(ctx, q, err, ui)
		return s
	}

	return svc.apply(q, s.Gallery(), s.TotalHits(), p, ui)
}

// Lookup fetches a single page without touching any session.
func (svc *Service) Lookup(ctx context.Context, rawTerm string, pageNum int) (page.Page, error) {
	term, ok := query.NormalizeTerm(rawTerm)
	if !ok {
		return page.Page{}, domain.ErrEmptyTerm
	}
	if pageNum < 1 {
		return page.Page{}, fmt.Errorf("page %d: %w", pageNum, domain.ErrInvalidPage)
	}

	p, err := svc.searcher.FetchPage(ctx, term, pageNum)
	if err != nil {
		return page.Page{}, fmt.Errorf("lookup %q page %d: %w", term, pageNum, err)
	}
	return p, nil
}

// apply renders a fetched page into g and decides what comes next.
// prevTotalHits is kept when the page is empty.
func (svc *Service) apply(
	q query.State, g domgallery.Container, prevTotalHits int, p page.Page, ui UI,
) session.Session {
	if p.IsEmpty() {
		d := pagination.Decide(q.Page(), 0, g.Count(), p.TotalHits())
		ui.SetLoadMoreVisible(false)
		if d.Reason == pagination.ReasonNoMatches {
			notify(ui, notice.NoMatches())
		} else {
			notify(ui, notice.EndOfResults())
		}
		return session.Reconstruct(q, g, d.Status, prevTotalHits)
	}

	notify(ui, notice.Found(p.TotalHits()))

	added := g.RenderCards(p.Items())
	metrics.CardsRenderedTotal.Add(float64(len(added)))
	ui.Append(added)
	ui.Refresh()

	d := pagination.Decide(q.Page(), p.Len(), g.Count(), p.TotalHits())
	ui.SetLoadMoreVisible(d.Status.LoadMoreVisible())
	if d.Reason == pagination.ReasonEndOfResults {
		notify(ui, notice.EndOfResults())
	}

	if q.Page() > 1 {
		ui.ScrollCards(scrollCards)
	}

	return session.Reconstruct(q, g, d.Status, p.TotalHits())
}

func (svc *Service) fail(ctx context.Context, q query.State, err error, ui UI) {
	logger.FromContextOr(ctx, svc.logger).Error("Image search failed",
		zap.String("term", q.Term()),
		zap.Int("page", q.Page()),
		zap.Bool("upstream", domain.IsRequestFailure(err)),
		zap.Error(err),
	)
	notify(ui, notice.RequestFailed())
}

func notify(ui NotificationSink, n notice.Notice) {
	metrics.NoticesTotal.WithLabelValues(string(n.Kind)).Inc()
	ui.Info(n)
}
