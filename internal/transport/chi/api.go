package chi

import (
	"time"

	"github.com/kailas-cloud/pixgallery/internal/domain/notice"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest    ErrorCode = "bad_request"
	ErrorCodeUnauthorized  ErrorCode = "unauthorized"
	ErrorCodeUpstreamError ErrorCode = "upstream_error"
	ErrorCodeRateLimited   ErrorCode = "rate_limited"
	ErrorCodeQuotaExceeded ErrorCode = "quota_exceeded"
	ErrorCodeInternalError ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ImageItem is one search hit in the JSON API.
type ImageItem struct {
	ID            int    `json:"id"`
	PageURL       string `json:"page_url"`
	WebformatURL  string `json:"webformat_url"`
	LargeImageURL string `json:"large_image_url"`
	Tags          string `json:"tags"`
	User          string `json:"user"`
	Likes         int    `json:"likes"`
	Views         int    `json:"views"`
	Comments      int    `json:"comments"`
	Downloads     int    `json:"downloads"`
}

// SearchResult is the body of GET /api/v1/images.
type SearchResult struct {
	Query     string      `json:"query"`
	Page      int         `json:"page"`
	PerPage   int         `json:"per_page"`
	Total     int         `json:"total"`
	TotalHits int         `json:"total_hits"`
	HasMore   bool        `json:"has_more"`
	Items     []ImageItem `json:"items"`
}

// NoticeItem is a notification for the browser to display.
type NoticeItem struct {
	Kind    notice.Kind    `json:"kind"`
	Message string         `json:"message"`
	Options notice.Options `json:"options"`
}

// GalleryUpdate is the JSON reply to a search or load-more action.
// Reset clears the gallery before CardsHTML is appended; Scroll is the
// number of card heights to scroll by afterwards.
type GalleryUpdate struct {
	CardsHTML       string       `json:"cards_html"`
	Notices         []NoticeItem `json:"notices"`
	LoadMore        bool         `json:"load_more"`
	RefreshLightbox bool         `json:"refresh_lightbox"`
	Reset           bool         `json:"reset"`
	Scroll          int          `json:"scroll"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// UsageResponse is the body of GET /api/v1/usage. Limit 0 and Remaining -1
// mean no daily quota is configured.
type UsageResponse struct {
	PeriodStartAt time.Time `json:"period_start_at"`
	ResetsAt      time.Time `json:"resets_at"`
	Limit         int64     `json:"limit"`
	Used          int64     `json:"used"`
	Remaining     int64     `json:"remaining"`
	IsExhausted   bool      `json:"is_exhausted"`
}
