// Package notice defines the transient status messages shown to the user.
package notice

import "fmt"

// Kind identifies which gallery event produced a notice.
type Kind string

const (
	KindFound         Kind = "found"
	KindNoMatches     Kind = "no_matches"
	KindEndOfResults  Kind = "end_of_results"
	KindRequestFailed Kind = "request_failed"
)

// Default display options.
const (
	DefaultTimeoutMS = 3000
	DefaultPosition  = "right-top"
)

// Options controls how a notice is displayed.
type Options struct {
	TimeoutMS int    `json:"timeout_ms"`
	Position  string `json:"position"`
}

// DefaultOptions returns the stock display options.
func DefaultOptions() Options {
	return Options{TimeoutMS: DefaultTimeoutMS, Position: DefaultPosition}
}

// Notice is a single informational message.
type Notice struct {
	Kind    Kind
	Message string
}

// Found reports the total match count of a fetched page.
func Found(totalHits int) Notice {
	return Notice{Kind: KindFound, Message: fmt.Sprintf("Hooray! We found %d images.", totalHits)}
}

// NoMatches reports an empty first page.
func NoMatches() Notice {
	return Notice{
		Kind:    KindNoMatches,
		Message: "Sorry, there are no images matching your search query. Please try again.",
	}
}

// EndOfResults reports that every result has been loaded.
func EndOfResults() Notice {
	return Notice{
		Kind:    KindEndOfResults,
		Message: "We're sorry, but you've reached the end of search results.",
	}
}

// RequestFailed is the single generic message for any fetch failure.
func RequestFailed() Notice {
	return Notice{
		Kind:    KindRequestFailed,
		Message: "An error occurred while fetching images. Please try again later.",
	}
}
