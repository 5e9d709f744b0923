package page

import "github.com/kailas-cloud/pixgallery/internal/domain/image"

// Page is one fetched batch of search results.
type Page struct {
	total     int
	totalHits int
	items     []image.Image
}

// New creates a page. totalHits is the number of matches the API will page
// through, total the raw match count it reports.
func New(total, totalHits int, items []image.Image) Page {
	return Page{total: total, totalHits: totalHits, items: items}
}

// Total returns the raw match count.
func (p *Page) Total() int { return p.total }

// TotalHits returns the number of matches reachable through pagination.
func (p *Page) TotalHits() int { return p.totalHits }

// Items returns the images in API order.
func (p *Page) Items() []image.Image { return p.items }

// Len returns the number of images on the page.
func (p *Page) Len() int { return len(p.items) }

// IsEmpty reports whether the page has no images.
func (p *Page) IsEmpty() bool { return len(p.items) == 0 }
