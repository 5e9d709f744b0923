// Package pagination decides whether a gallery can load another page.
package pagination

import "fmt"

// Status is the pagination state of a gallery.
type Status string

const (
	// Idle means no search has completed yet.
	Idle Status = "idle"
	// MoreAvailable means further pages exist; "load more" is shown.
	MoreAvailable Status = "more_available"
	// Exhausted means every reachable result has been rendered; "load more" is hidden.
	Exhausted Status = "exhausted"
)

var validStatuses = map[Status]struct{}{
	Idle:          {},
	MoreAvailable: {},
	Exhausted:     {},
}

// IsValid reports whether the status is known.
func (s Status) IsValid() bool {
	_, ok := validStatuses[s]
	return ok
}

// LoadMoreVisible reports whether the "load more" control is shown.
func (s Status) LoadMoreVisible() bool { return s == MoreAvailable }

// Parse converts a stored value to a Status. Empty maps to Idle.
func Parse(v string) (Status, error) {
	if v == "" {
		return Idle, nil
	}
	s := Status(v)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown pagination status %q", v)
	}
	return s, nil
}

// Reason explains how a gallery became exhausted.
type Reason string

const (
	// ReasonNone is used while more results are available.
	ReasonNone Reason = ""
	// ReasonNoMatches means the first page came back empty.
	ReasonNoMatches Reason = "no_matches"
	// ReasonEndOfResults means the rendered count caught up with totalHits
	// or a later page came back empty.
	ReasonEndOfResults Reason = "end_of_results"
)

// Decision is the outcome of evaluating a fetched page.
type Decision struct {
	Status Status
	Reason Reason
}

// Decide evaluates a fetched page. pageNum is the 1-indexed page that was
// fetched, items its length, rendered the cumulative card count after the
// page was appended and totalHits the API's reachable match count.
func Decide(pageNum, items, rendered, totalHits int) Decision {
	if items == 0 {
		if pageNum <= 1 {
			return Decision{Status: Exhausted, Reason: ReasonNoMatches}
		}
		return Decision{Status: Exhausted, Reason: ReasonEndOfResults}
	}
	if rendered < totalHits {
		return Decision{Status: MoreAvailable, Reason: ReasonNone}
	}
	return Decision{Status: Exhausted, Reason: ReasonEndOfResults}
}
