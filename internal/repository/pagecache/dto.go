package pagecache

import (
	"github.com/kailas-cloud/pixgallery/internal/domain/image"
	"github.com/kailas-cloud/pixgallery/internal/domain/page"
)

type pageDTO struct {
	Total     int        `json:"total"`
	TotalHits int        `json:"total_hits"`
	Items     []imageDTO `json:"items"`
}

type imageDTO struct {
	ID            int    `json:"id"`
	WebformatURL  string `json:"webformat_url"`
	LargeImageURL string `json:"large_image_url"`
	PageURL       string `json:"page_url,omitempty"`
	Tags          string `json:"tags"`
	User          string `json:"user,omitempty"`
	Likes         int    `json:"likes"`
	Views         int    `json:"views"`
	Comments      int    `json:"comments"`
	Downloads     int    `json:"downloads"`
}

func fromDomain(p page.Page) pageDTO {
	items := p.Items()
	dto := pageDTO{
		Total:     p.Total(),
		TotalHits: p.TotalHits(),
		Items:     make([]imageDTO, len(items)),
	}
	for i := range items {
		img := &items[i]
		stats := img.Stats()
		dto.Items[i] = imageDTO{
			ID:            img.ID(),
			WebformatURL:  img.WebformatURL(),
			LargeImageURL: img.LargeImageURL(),
			PageURL:       img.PageURL(),
			Tags:          img.Tags(),
			User:          img.User(),
			Likes:         stats.Likes,
			Views:         stats.Views,
			Comments:      stats.Comments,
			Downloads:     stats.Downloads,
		}
	}
	return dto
}

func (d *pageDTO) toDomain() page.Page {
	items := make([]image.Image, len(d.Items))
	for i, it := range d.Items {
		items[i] = image.New(it.ID, it.WebformatURL, it.LargeImageURL, it.PageURL, it.Tags, it.User, image.Stats{
			Likes:     it.Likes,
			Views:     it.Views,
			Comments:  it.Comments,
			Downloads: it.Downloads,
		})
	}
	return page.New(d.Total, d.TotalHits, items)
}
