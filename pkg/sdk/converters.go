package pixgallery

import (
	"github.com/kailas-cloud/pixgallery/internal/domain"
	domgallery "github.com/kailas-cloud/pixgallery/internal/domain/gallery"
	"github.com/kailas-cloud/pixgallery/internal/domain/image"
	"github.com/kailas-cloud/pixgallery/internal/domain/notice"
	"github.com/kailas-cloud/pixgallery/internal/domain/page"
	"github.com/kailas-cloud/pixgallery/internal/domain/pagination"
	"github.com/kailas-cloud/pixgallery/internal/domain/query"
)

func searchResultFromPage(rawTerm string, pageNum int, p *page.Page) SearchResult {
	term, _ := query.NormalizeTerm(rawTerm)
	rendered := (pageNum-1)*domain.PerPage + p.Len()
	decision := pagination.Decide(pageNum, p.Len(), rendered, p.TotalHits())

	images := make([]Image, p.Len())
	for i, img := range p.Items() {
		images[i] = imageFromDomain(&img)
	}
	return SearchResult{
		Query:     term,
		Page:      pageNum,
		Total:     p.Total(),
		TotalHits: p.TotalHits(),
		HasMore:   decision.Status == pagination.MoreAvailable,
		Images:    images,
	}
}

func imageFromDomain(img *image.Image) Image {
	stats := img.Stats()
	return Image{
		ID:            img.ID(),
		PageURL:       img.PageURL(),
		WebformatURL:  img.WebformatURL(),
		LargeImageURL: img.LargeImageURL(),
		Tags:          img.Tags(),
		User:          img.User(),
		Likes:         stats.Likes,
		Views:         stats.Views,
		Comments:      stats.Comments,
		Downloads:     stats.Downloads,
	}
}

func cardFromDomain(c *domgallery.Card) Card {
	fields := make([]Field, len(c.Fields))
	for i, f := range c.Fields {
		fields[i] = Field{Label: f.Label, Value: f.Value}
	}
	return Card{
		ImageID:  c.ImageID,
		LinkURL:  c.LinkURL,
		ThumbURL: c.ThumbURL,
		Alt:      c.Alt,
		Fields:   fields,
	}
}

func noticeFromDomain(n notice.Notice) Notice {
	return Notice{Kind: string(n.Kind), Message: n.Message}
}
