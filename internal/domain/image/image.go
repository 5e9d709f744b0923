package image

// Image is a single result item reported by the image-search API.
type Image struct {
	id            int
	webformatURL  string
	largeImageURL string
	pageURL       string
	tags          string
	user          string
	likes         int
	views         int
	comments      int
	downloads     int
}

// Stats holds the engagement counters shown on a card.
type Stats struct {
	Likes     int
	Views     int
	Comments  int
	Downloads int
}

// New creates an image record.
func New(id int, webformatURL, largeImageURL, pageURL, tags, user string, stats Stats) Image {
	return Image{
		id:            id,
		webformatURL:  webformatURL,
		largeImageURL: largeImageURL,
		pageURL:       pageURL,
		tags:          tags,
		user:          user,
		likes:         stats.Likes,
		views:         stats.Views,
		comments:      stats.Comments,
		downloads:     stats.Downloads,
	}
}

// ID returns the upstream image id.
func (i *Image) ID() int { return i.id }

// WebformatURL returns the medium-size preview URL.
func (i *Image) WebformatURL() string { return i.webformatURL }

// LargeImageURL returns the full-size image URL.
func (i *Image) LargeImageURL() string { return i.largeImageURL }

// PageURL returns the image page on the provider's site.
func (i *Image) PageURL() string { return i.pageURL }

// Tags returns the comma-separated tag list.
func (i *Image) Tags() string { return i.tags }

// User returns the uploader's name.
func (i *Image) User() string { return i.user }

// Stats returns the engagement counters.
func (i *Image) Stats() Stats {
	return Stats{Likes: i.likes, Views: i.views, Comments: i.comments, Downloads: i.downloads}
}
