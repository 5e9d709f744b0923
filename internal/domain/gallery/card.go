// Package gallery turns image records into cards and keeps them in render order.
package gallery

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/kailas-cloud/pixgallery/internal/domain/image"
)

// Card field labels, in display order.
const (
	LabelLikes     = "Likes"
	LabelViews     = "Views"
	LabelComments  = "Comments"
	LabelDownloads = "Downloads"
)

// altPolicy strips any markup from upstream tags; templates escape the rest.
var altPolicy = bluemonday.StrictPolicy()

// Field is a single label:value pair on a card.
type Field struct {
	Label string
	Value int
}

// Card is the rendered unit for one image: a lightbox link to the full-size
// image wrapping a lazily loaded thumbnail, plus four metadata fields.
type Card struct {
	ImageID  int
	LinkURL  string
	ThumbURL string
	Alt      string
	Fields   []Field
}

// NewCard builds the card for img.
func NewCard(img image.Image) Card {
	stats := img.Stats()
	return Card{
		ImageID:  img.ID(),
		LinkURL:  img.LargeImageURL(),
		ThumbURL: img.WebformatURL(),
		Alt:      plainText(img.Tags()),
		Fields: []Field{
			{Label: LabelLikes, Value: stats.Likes},
			{Label: LabelViews, Value: stats.Views},
			{Label: LabelComments, Value: stats.Comments},
			{Label: LabelDownloads, Value: stats.Downloads},
		},
	}
}

// Field returns the value for label and whether the card has it.
func (c *Card) Field(label string) (int, bool) {
	for _, f := range c.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return 0, false
}

func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(altPolicy.Sanitize(s)))
}
