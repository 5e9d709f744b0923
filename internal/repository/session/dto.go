package session

import (
	"github.com/kailas-cloud/pixgallery/internal/domain/gallery"
	"github.com/kailas-cloud/pixgallery/internal/domain/pagination"
	"github.com/kailas-cloud/pixgallery/internal/domain/query"
	domsession "github.com/kailas-cloud/pixgallery/internal/domain/session"
)

type sessionDTO struct {
	Term      string    `json:"term,omitempty"`
	Page      int       `json:"page,omitempty"`
	Status    string    `json:"status"`
	TotalHits int       `json:"total_hits"`
	Cards     []cardDTO `json:"cards"`
}

type cardDTO struct {
	ImageID  int        `json:"image_id"`
	LinkURL  string     `json:"link_url"`
	ThumbURL string     `json:"thumb_url"`
	Alt      string     `json:"alt"`
	Fields   []fieldDTO `json:"fields"`
}

type fieldDTO struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

func fromDomain(s domsession.Session) sessionDTO {
	q := s.Query()
	cards := s.Cards()
	dto := sessionDTO{
		Term:      q.Term(),
		Page:      q.Page(),
		Status:    string(s.Status()),
		TotalHits: s.TotalHits(),
		Cards:     make([]cardDTO, len(cards)),
	}
	for i, c := range cards {
		fields := make([]fieldDTO, len(c.Fields))
		for j, f := range c.Fields {
			fields[j] = fieldDTO{Label: f.Label, Value: f.Value}
		}
		dto.Cards[i] = cardDTO{
			ImageID:  c.ImageID,
			LinkURL:  c.LinkURL,
			ThumbURL: c.ThumbURL,
			Alt:      c.Alt,
			Fields:   fields,
		}
	}
	return dto
}

func (d *sessionDTO) toDomain() (domsession.Session, error) {
	status, err := pagination.Parse(d.Status)
	if err != nil {
		return domsession.Session{}, err
	}

	cards := make([]gallery.Card, len(d.Cards))
	for i, c := range d.Cards {
		fields := make([]gallery.Field, len(c.Fields))
		for j, f := range c.Fields {
			fields[j] = gallery.Field{Label: f.Label, Value: f.Value}
		}
		cards[i] = gallery.Card{
			ImageID:  c.ImageID,
			LinkURL:  c.LinkURL,
			ThumbURL: c.ThumbURL,
			Alt:      c.Alt,
			Fields:   fields,
		}
	}

	return domsession.Reconstruct(
		query.Reconstruct(d.Term, d.Page),
		gallery.Restore(cards),
		status,
		d.TotalHits,
	), nil
}
