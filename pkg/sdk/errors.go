package pixgallery

import "github.com/kailas-cloud/pixgallery/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNetwork     = domain.ErrNetwork
	ErrParse       = domain.ErrParse
	ErrRateLimited = domain.ErrRateLimited
	ErrEmptyTerm   = domain.ErrEmptyTerm
	ErrInvalidPage = domain.ErrInvalidPage
)
