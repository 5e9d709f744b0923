// Package session holds the explicit per-user gallery state that is passed
// into and returned from every controller operation.
package session

import (
	"github.com/kailas-cloud/pixgallery/internal/domain/gallery"
	"github.com/kailas-cloud/pixgallery/internal/domain/pagination"
	"github.com/kailas-cloud/pixgallery/internal/domain/query"
)

// Session is the state of one gallery: what was searched, what is rendered
// and whether more pages can be loaded.
type Session struct {
	query     query.State
	gallery   gallery.Container
	status    pagination.Status
	totalHits int
}

// New returns an idle session with an empty gallery.
func New() Session {
	return Session{status: pagination.Idle}
}

// Reconstruct assembles a session from its parts.
func Reconstruct(q query.State, g gallery.Container, status pagination.Status, totalHits int) Session {
	if status == "" {
		status = pagination.Idle
	}
	return Session{query: q, gallery: g, status: status, totalHits: totalHits}
}

// Query returns the search term and page.
func (s *Session) Query() query.State { return s.query }

// Gallery returns a copy of the rendered cards.
func (s *Session) Gallery() gallery.Container { return s.gallery.Clone() }

// Cards returns the rendered cards without copying.
func (s *Session) Cards() []gallery.Card { return s.gallery.Cards() }

// RenderedCount returns the number of rendered cards.
func (s *Session) RenderedCount() int { return s.gallery.Count() }

// Status returns the pagination status.
func (s *Session) Status() pagination.Status { return s.status }

// TotalHits returns the match count reported by the most recent non-empty page.
func (s *Session) TotalHits() int { return s.totalHits }

// LoadMoreVisible reports whether the "load more" control is shown.
func (s *Session) LoadMoreVisible() bool { return s.status.LoadMoreVisible() }
