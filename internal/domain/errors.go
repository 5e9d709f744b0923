package domain

import (
	"errors"
)

var (
	// ErrNetwork signals that a request to the image-search API could not be completed.
	ErrNetwork = errors.New("network error")
	// ErrParse signals that the image-search API response could not be interpreted.
	ErrParse = errors.New("parse error")
	// ErrRateLimited signals an upstream rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrQuotaExceeded signals that the daily upstream request quota is used up.
	ErrQuotaExceeded = errors.New("request quota exceeded")
	// ErrEmptyTerm signals a blank search term.
	ErrEmptyTerm = errors.New("search term is required")
	// ErrInvalidPage signals a page number below 1.
	ErrInvalidPage = errors.New("page must be >= 1")
	// ErrSessionNotFound signals a missing or expired gallery session.
	ErrSessionNotFound = errors.New("session not found")
)

// IsRequestFailure reports whether err is a fetch failure that the gallery
// reports with the single generic notification.
func IsRequestFailure(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrParse)
}
