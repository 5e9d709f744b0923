package pixgallery

import (
	"context"
	"errors"
	"time"

	domgallery "github.com/kailas-cloud/pixgallery/internal/domain/gallery"
	"github.com/kailas-cloud/pixgallery/internal/domain/notice"
	"github.com/kailas-cloud/pixgallery/internal/domain/session"
)

// errActionFailed is reported to the observer when a gallery action
// surfaced a request failure.
var errActionFailed = errors.New("gallery action failed")

// Gallery is a search session: the current query, the accumulated cards and
// whether more results can be loaded.
type Gallery struct {
	svc   galleryUseCase
	obs   *observer
	state session.Session
}

// Submit starts a new search for term. A blank term leaves the gallery
// untouched and returns an empty Update.
func (g *Gallery) Submit(ctx context.Context, term string) Update {
	start := time.Now()
	rec := &updateRecorder{loadMore: g.state.LoadMoreVisible()}
	g.state = g.svc.Submit(ctx, g.state, term, rec)
	u := rec.update()
	g.obs.observe("gallery_submit", start, u.err())
	return u
}

// LoadMore fetches the next page of the current search. It does nothing
// unless more results are available.
func (g *Gallery) LoadMore(ctx context.Context) Update {
	start := time.Now()
	rec := &updateRecorder{loadMore: g.state.LoadMoreVisible()}
	g.state = g.svc.LoadMore(ctx, g.state, rec)
	u := rec.update()
	g.obs.observe("gallery_load_more", start, u.err())
	return u
}

// Term returns the active search term, or "" before the first search.
func (g *Gallery) Term() string {
	q := g.state.Query()
	return q.Term()
}

// Cards returns every card currently in the gallery, in render order.
func (g *Gallery) Cards() []Card {
	src := g.state.Cards()
	out := make([]Card, len(src))
	for i := range src {
		out[i] = cardFromDomain(&src[i])
	}
	return out
}

// TotalHits is the reachable match count reported by the last successful fetch.
func (g *Gallery) TotalHits() int { return g.state.TotalHits() }

// HasMore reports whether LoadMore would fetch another page.
func (g *Gallery) HasMore() bool { return g.state.LoadMoreVisible() }

// updateRecorder collects what one controller operation did.
type updateRecorder struct {
	reset    bool
	cards    []Card
	notices  []Notice
	loadMore bool
}

func (r *updateRecorder) Info(n notice.Notice) {
	r.notices = append(r.notices, noticeFromDomain(n))
}

func (r *updateRecorder) Refresh() {}

func (r *updateRecorder) Reset() {
	r.reset = true
	r.cards = nil
}

func (r *updateRecorder) Append(cards []domgallery.Card) {
	for i := range cards {
		r.cards = append(r.cards, cardFromDomain(&cards[i]))
	}
}

func (r *updateRecorder) SetLoadMoreVisible(visible bool) { r.loadMore = visible }

func (r *updateRecorder) ScrollCards(int) {}

func (r *updateRecorder) update() Update {
	u := Update{
		Reset:    r.reset,
		Cards:    r.cards,
		Notices:  r.notices,
		LoadMore: r.loadMore,
	}
	for _, n := range r.notices {
		if n.Kind == string(notice.KindRequestFailed) {
			u.Failed = true
		}
	}
	return u
}

func (u Update) err() error {
	if u.Failed {
		return errActionFailed
	}
	return nil
}
