package pixabay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/domain"
	"github.com/kailas-cloud/pixgallery/internal/domain/image"
	"github.com/kailas-cloud/pixgallery/internal/domain/page"
	"github.com/kailas-cloud/pixgallery/internal/metrics"
)

// maxBodyBytes bounds the response size read from the API.
const maxBodyBytes = 4 << 20

// Client fetches result pages from the Pixabay image-search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// Config holds the client settings.
type Config struct {
	APIKey  string
	BaseURL string
	// Timeout bounds a whole request. Zero leaves the transport default.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates an image-search API client.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: hc,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

// response mirrors the API's JSON body. Hits is a pointer so that a body
// without the field can be told apart from an empty result.
type response struct {
	Total     int    `json:"total"`
	TotalHits int    `json:"totalHits"`
	Hits      *[]hit `json:"hits"`
}

type hit struct {
	ID            int    `json:"id"`
	PageURL       string `json:"pageURL"`
	Tags          string `json:"tags"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	Views         int    `json:"views"`
	Downloads     int    `json:"downloads"`
	Likes         int    `json:"likes"`
	Comments      int    `json:"comments"`
	User          string `json:"user"`
}

// FetchPage requests one page of photos for term. An empty page is a valid
// result. Failures wrap domain.ErrNetwork or domain.ErrParse.
func (c *Client) FetchPage(ctx context.Context, term string, pageNum int) (page.Page, error) {
	if term == "" {
		return page.Page{}, domain.ErrEmptyTerm
	}
	if pageNum < 1 {
		return page.Page{}, domain.ErrInvalidPage
	}

	reqURL, err := c.buildURL(term, pageNum)
	if err != nil {
		return page.Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return page.Page{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.fail("network")
		return page.Page{}, fmt.Errorf("image search request: %w: %w", domain.ErrNetwork, redactKey(err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.fail("network")
		return page.Page{}, fmt.Errorf("read response: %w: %w", domain.ErrNetwork, err)
	}

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		c.logger.Debug("image search rate limit",
			zap.String("remaining", remaining),
			zap.String("reset", resp.Header.Get("X-RateLimit-Reset")),
		)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.fail("rate_limited")
		return page.Page{}, fmt.Errorf("image search API status %d: %w: %w",
			resp.StatusCode, domain.ErrNetwork, domain.ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.fail("status")
		return page.Page{}, fmt.Errorf("image search API status %d: %s: %w",
			resp.StatusCode, truncate(string(body), 200), domain.ErrNetwork)
	}

	p, err := decode(body)
	if err != nil {
		c.fail("parse")
		return page.Page{}, err
	}

	metrics.PixabayRequestsTotal.WithLabelValues("success").Inc()
	metrics.PixabayRequestDuration.Observe(duration.Seconds())

	return p, nil
}

func (c *Client) buildURL(term string, pageNum int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("q", term)
	q.Set("image_type", domain.ImageType)
	q.Set("orientation", domain.Orientation)
	q.Set("safesearch", strconv.FormatBool(domain.SafeSearch))
	q.Set("page", strconv.Itoa(pageNum))
	q.Set("per_page", strconv.Itoa(domain.PerPage))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (c *Client) fail(errorType string) {
	metrics.PixabayRequestsTotal.WithLabelValues("error").Inc()
	metrics.PixabayErrorsTotal.WithLabelValues(errorType).Inc()
}

// decode converts a response body into a page. A body without a hits array
// is treated as malformed.
func decode(body []byte) (page.Page, error) {
	var raw response
	if err := json.Unmarshal(body, &raw); err != nil {
		return page.Page{}, fmt.Errorf("decode response: %w: %w", domain.ErrParse, err)
	}
	if raw.Hits == nil {
		return page.Page{}, fmt.Errorf("decode response: missing hits: %w", domain.ErrParse)
	}
	if raw.TotalHits < 0 {
		return page.Page{}, fmt.Errorf("decode response: negative totalHits %d: %w", raw.TotalHits, domain.ErrParse)
	}

	items := make([]image.Image, len(*raw.Hits))
	for i, h := range *raw.Hits {
		items[i] = image.New(h.ID, h.WebformatURL, h.LargeImageURL, h.PageURL, h.Tags, h.User, image.Stats{
			Likes:     h.Likes,
			Views:     h.Views,
			Comments:  h.Comments,
			Downloads: h.Downloads,
		})
	}

	return page.New(raw.Total, raw.TotalHits, items), nil
}

// redactKey strips the query string (and with it the API key) from url.Error messages.
func redactKey(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if u, perr := url.Parse(uerr.URL); perr == nil {
			u.RawQuery = ""
			return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
		}
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
