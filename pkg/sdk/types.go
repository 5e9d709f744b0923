package pixgallery

// Image is a single search hit.
type Image struct {
	ID            int
	PageURL       string
	WebformatURL  string
	LargeImageURL string
	Tags          string
	User          string
	Likes         int
	Views         int
	Comments      int
	Downloads     int
}

// SearchResult is one page of hits.
type SearchResult struct {
	Query     string
	Page      int
	Total     int
	TotalHits int
	HasMore   bool
	Images    []Image
}

// Field is a labelled value shown on a card.
type Field struct {
	Label string
	Value int
}

// Card is a rendered gallery entry.
type Card struct {
	ImageID  int
	LinkURL  string // full-size image
	ThumbURL string
	Alt      string
	Fields   []Field
}

// Notice is an informational message produced by a gallery action.
type Notice struct {
	Kind    string // "found", "no_matches", "end_of_results", "request_failed"
	Message string
}

// Update describes what a gallery action changed.
type Update struct {
	// Reset is true when the gallery was cleared before Cards were added.
	Reset    bool
	Cards    []Card
	Notices  []Notice
	LoadMore bool
	// Failed is true when the fetch failed and nothing changed.
	Failed bool
}
