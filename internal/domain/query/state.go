// Package query holds the current search term and page of a gallery.
package query

import (
	"strings"
	"unicode/utf8"
)

// MaxTermLength is the longest term the image-search API accepts.
const MaxTermLength = 100

// State is the search term plus the 1-indexed page last requested for it.
// The zero value is an idle state with no term.
type State struct {
	term string
	page int
}

// NormalizeTerm trims raw user input. ok is false for a blank term,
// which callers ignore silently. Terms longer than MaxTermLength are cut
// at a rune boundary.
func NormalizeTerm(raw string) (string, bool) {
	term := strings.TrimSpace(raw)
	if term == "" {
		return "", false
	}
	if utf8.RuneCountInString(term) > MaxTermLength {
		runes := []rune(term)
		term = strings.TrimSpace(string(runes[:MaxTermLength]))
	}
	return term, true
}

// Reset starts a new search for term at page 1.
func Reset(term string) State {
	return State{term: term, page: 1}
}

// Reconstruct restores a state from storage.
func Reconstruct(term string, page int) State {
	if term == "" {
		return State{}
	}
	if page < 1 {
		page = 1
	}
	return State{term: term, page: page}
}

// NextPage returns the state advanced by one page.
func (s State) NextPage() State {
	return State{term: s.term, page: s.page + 1}
}

// Term returns the current search term.
func (s State) Term() string { return s.term }

// Page returns the current page number (0 when idle).
func (s State) Page() int { return s.page }

// IsIdle reports whether no search has been submitted yet.
func (s State) IsIdle() bool { return s.term == "" }
