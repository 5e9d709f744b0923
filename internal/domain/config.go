package domain

// KeyPrefix namespaces every key pixgallery writes to the store.
const KeyPrefix = "pixgallery:"

// Fixed image-search request parameters.
const (
	PerPage     = 40
	ImageType   = "photo"
	Orientation = "horizontal"
	SafeSearch  = true
)
