package gallery

import (
	"context"

	domgallery "github.com/kailas-cloud/pixgallery/internal/domain/gallery"
	"github.com/kailas-cloud/pixgallery/internal/domain/notice"
	"github.com/kailas-cloud/pixgallery/internal/domain/page"
)

// Searcher fetches one page of results for a term.
type Searcher interface {
	FetchPage(ctx context.Context, term string, pageNum int) (page.Page, error)
}

// NotificationSink shows transient informational messages.
type NotificationSink interface {
	Info(n notice.Notice)
}

// LightboxViewer re-indexes the gallery's full-size links after cards are added.
type LightboxViewer interface {
	Refresh()
}

// GalleryView mirrors container changes onto whatever displays the gallery.
type GalleryView interface {
	Reset()
	Append(cards []domgallery.Card)
	SetLoadMoreVisible(visible bool)
	// ScrollCards asks the view to scroll forward by n card heights.
	ScrollCards(n int)
}

// UI bundles the collaborators a controller operation reports to.
type UI interface {
	NotificationSink
	LightboxViewer
	GalleryView
}
