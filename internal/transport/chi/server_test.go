package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/domain"
	"github.com/kailas-cloud/pixgallery/internal/domain/image"
	"github.com/kailas-cloud/pixgallery/internal/domain/notice"
	"github.com/kailas-cloud/pixgallery/internal/domain/page"
	"github.com/kailas-cloud/pixgallery/internal/domain/session"
	galleryuc "github.com/kailas-cloud/pixgallery/internal/usecase/gallery"
	healthuc "github.com/kailas-cloud/pixgallery/internal/usecase/health"
	usageuc "github.com/kailas-cloud/pixgallery/internal/usecase/usage"
)

// --- Mocks ---

type mockSearcher struct {
	fetchFn func(ctx context.Context, term string, pageNum int) (page.Page, error)
}

func (m *mockSearcher) FetchPage(ctx context.Context, term string, pageNum int) (page.Page, error) {
	return m.fetchFn(ctx, term, pageNum)
}

// pagedSearcher serves totalHits results 40 at a time.
func pagedSearcher(totalHits int) *mockSearcher {
	return &mockSearcher{
		fetchFn: func(_ context.Context, _ string, pageNum int) (page.Page, error) {
			start := (pageNum - 1) * domain.PerPage
			n := max(min(domain.PerPage, totalHits-start), 0)
			items := make([]image.Image, n)
			for i := range items {
				id := start + i
				items[i] = image.New(id, fmt.Sprintf("https://cdn/%d_640.jpg", id),
					fmt.Sprintf("https://cdn/%d_1280.jpg", id), "", "cat, pet", "", image.Stats{Likes: id})
			}
			return page.New(totalHits, totalHits, items), nil
		},
	}
}

type memSessions struct {
	data   map[string]session.Session
	getErr error
	saves  int
}

func (m *memSessions) Get(_ context.Context, id string) (session.Session, error) {
	if m.getErr != nil {
		return session.Session{}, m.getErr
	}
	s, ok := m.data[id]
	if !ok {
		return session.Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *memSessions) Save(_ context.Context, id string, s session.Session) error {
	m.saves++
	m.data[id] = s
	return nil
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Helpers ---

func newTestServer(t *testing.T, searcher galleryuc.Searcher, opts Options) (http.Handler, *memSessions) {
	t.Helper()
	return newTestServerWithHealth(t, searcher, opts, &mockPinger{})
}

func newTestServerWithHealth(
	t *testing.T, searcher galleryuc.Searcher, opts Options, pinger healthuc.DBPinger,
) (http.Handler, *memSessions) {
	t.Helper()
	sessions := &memSessions{data: map[string]session.Session{}}
	srv := NewServer(
		galleryuc.New(searcher, zap.NewNop()),
		sessions,
		healthuc.New(pinger),
		usageuc.New(nil),
		opts,
		zap.NewNop(),
	)
	r := chi.NewRouter()
	srv.Routes(r)
	return r, sessions
}

func doRequest(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// browser keeps the session cookie between requests.
type browser struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func (b *browser) do(method, path, body string, jsonReply bool) *httptest.ResponseRecorder {
	b.t.Helper()
	headers := map[string]string{}
	if jsonReply {
		headers["Accept"] = "application/json"
	}
	if b.cookie != nil {
		headers["Cookie"] = b.cookie.Name + "=" + b.cookie.Value
	}
	rr := doRequest(b.h, method, path, body, headers)
	for _, c := range rr.Result().Cookies() {
		if c.Name == "pixgallery_session" {
			b.cookie = c
		}
	}
	return rr
}

func (b *browser) update(method, path, body string) GalleryUpdate {
	b.t.Helper()
	rr := b.do(method, path, body, true)
	if rr.Code != http.StatusOK {
		b.t.Fatalf("%s %s: status %d: %s", method, path, rr.Code, rr.Body.String())
	}
	var u GalleryUpdate
	if err := json.NewDecoder(rr.Body).Decode(&u); err != nil {
		b.t.Fatalf("decode update: %v", err)
	}
	return u
}

func noticeKinds(u GalleryUpdate) []notice.Kind {
	out := make([]notice.Kind, len(u.Notices))
	for i, n := range u.Notices {
		out[i] = n.Kind
	}
	return out
}

// --- Gallery page ---

func TestIndex_NewSession(t *testing.T) {
	h, _ := newTestServer(t, pagedSearcher(10), Options{})
	b := &browser{t: t, h: h}

	rr := b.do(http.MethodGet, "/", "", false)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %s", ct)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `name="searchQuery"`) {
		t.Error("expected search form")
	}
	if !strings.Contains(body, `class="load-more" style="display: none"`) {
		t.Error("load more must be hidden before any search")
	}
	if b.cookie == nil {
		t.Fatal("expected session cookie")
	}
	if !b.cookie.HttpOnly || b.cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie flags: httpOnly=%v sameSite=%v", b.cookie.HttpOnly, b.cookie.SameSite)
	}
}

func TestSearch_JSONFlow(t *testing.T) {
	h, sessions := newTestServer(t, pagedSearcher(120), Options{})
	b := &browser{t: t, h: h}

	u := b.update(http.MethodPost, "/search", "searchQuery=cats")

	if !u.Reset || !u.RefreshLightbox || !u.LoadMore {
		t.Errorf("unexpected flags: %+v", u)
	}
	if got := strings.Count(u.CardsHTML, `class="photo-card"`); got != 40 {
		t.Errorf("cards = %d, want 40", got)
	}
	if len(u.Notices) != 1 || u.Notices[0].Message != "Hooray! We found 120 images." {
		t.Errorf("notices = %+v", u.Notices)
	}
	if u.Notices[0].Options != notice.DefaultOptions() {
		t.Errorf("options = %+v", u.Notices[0].Options)
	}
	if u.Scroll != 0 {
		t.Errorf("scroll = %d on first page", u.Scroll)
	}
	if sessions.saves != 1 {
		t.Errorf("saves = %d", sessions.saves)
	}

	u = b.update(http.MethodPost, "/more", "")
	if u.Reset || !u.LoadMore || u.Scroll != 2 {
		t.Errorf("page 2 flags: %+v", u)
	}
	if got := strings.Count(u.CardsHTML, `class="photo-card"`); got != 40 {
		t.Errorf("page 2 cards = %d, want 40", got)
	}

	u = b.update(http.MethodPost, "/more", "")
	if u.LoadMore {
		t.Error("load more must be hidden after the last page")
	}
	kinds := noticeKinds(u)
	if len(kinds) != 2 || kinds[0] != notice.KindFound || kinds[1] != notice.KindEndOfResults {
		t.Errorf("notices = %v", kinds)
	}

	// Exhausted: another load more does nothing.
	u = b.update(http.MethodPost, "/more", "")
	if u.CardsHTML != "" || len(u.Notices) != 0 || u.LoadMore {
		t.Errorf("load more after end: %+v", u)
	}

	rr := b.do(http.MethodGet, "/", "", false)
	if got := strings.Count(rr.Body.String(), `class="photo-card"`); got != 120 {
		t.Errorf("page shows %d cards, want 120", got)
	}
}

func TestSearch_CardMarkup(t *testing.T) {
	h, _ := newTestServer(t, &mockSearcher{
		fetchFn: func(context.Context, string, int) (page.Page, error) {
			return page.New(1, 1, []image.Image{
				image.New(9, "https://cdn/9_640.jpg", "https://cdn/9_1280.jpg", "",
					`red <script>alert(1)</script>rose`, "", image.Stats{Likes: 1, Views: 2, Comments: 3, Downloads: 4}),
			}), nil
		},
	}, Options{})
	b := &browser{t: t, h: h}

	u := b.update(http.MethodPost, "/search", "searchQuery=rose")

	for _, want := range []string{
		`<a href="https://cdn/9_1280.jpg" data-lightbox="gallery">`,
		`src="https://cdn/9_640.jpg"`,
		`loading="lazy"`,
		`<p class="info-item"><b>Likes:</b> 1</p>`,
		`<p class="info-item"><b>Downloads:</b> 4</p>`,
	} {
		if !strings.Contains(u.CardsHTML, want) {
			t.Errorf("cards html missing %q:\n%s", want, u.CardsHTML)
		}
	}
	if strings.Contains(u.CardsHTML, "<script>") {
		t.Error("tags must not inject markup")
	}
}

func TestSearch_NoMatches(t *testing.T) {
	h, _ := newTestServer(t, pagedSearcher(0), Options{})
	b := &browser{t: t, h: h}

	u := b.update(http.MethodPost, "/search", "searchQuery=zzzqqqnomatch")

	if !u.Reset || u.LoadMore || u.RefreshLightbox || u.CardsHTML != "" {
		t.Errorf("unexpected update: %+v", u)
	}
	kinds := noticeKinds(u)
	if len(kinds) != 1 || kinds[0] != notice.KindNoMatches {
		t.Errorf("notices = %v", kinds)
	}
}

func TestSearch_FailureKeepsGallery(t *testing.T) {
	searcher := pagedSearcher(120)
	h, _ := newTestServer(t, searcher, Options{})
	b := &browser{t: t, h: h}
	b.update(http.MethodPost, "/search", "searchQuery=cats")

	searcher.fetchFn = func(context.Context, string, int) (page.Page, error) {
		return page.Page{}, fmt.Errorf("decode: %w", domain.ErrParse)
	}
	u := b.update(http.MethodPost, "/search", "searchQuery=dogs")

	if u.Reset || u.CardsHTML != "" {
		t.Errorf("failure must not touch the gallery: %+v", u)
	}
	if !u.LoadMore {
		t.Error("load more visibility must be unchanged")
	}
	kinds := noticeKinds(u)
	if len(kinds) != 1 || kinds[0] != notice.KindRequestFailed {
		t.Errorf("notices = %v", kinds)
	}

	rr := b.do(http.MethodGet, "/", "", false)
	if !strings.Contains(rr.Body.String(), `value="cats"`) {
		t.Error("previous search must survive the failure")
	}
}

func TestSearch_BlankTermIgnored(t *testing.T) {
	h, _ := newTestServer(t, pagedSearcher(120), Options{})
	b := &browser{t: t, h: h}

	u := b.update(http.MethodPost, "/search", "searchQuery=+++")

	if u.Reset || len(u.Notices) != 0 || u.LoadMore || u.CardsHTML != "" {
		t.Errorf("blank term must be ignored: %+v", u)
	}
}

func TestSearch_FormFallback(t *testing.T) {
	h, _ := newTestServer(t, pagedSearcher(120), Options{})
	b := &browser{t: t, h: h}

	rr := b.do(http.MethodPost, "/search", "searchQuery=cats", false)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Hooray! We found 120 images.") {
		t.Error("expected inline notice")
	}
	if got := strings.Count(body, `class="photo-card"`); got != 40 {
		t.Errorf("cards = %d", got)
	}
	if strings.Contains(body, `class="load-more" style="display: none"`) {
		t.Error("load more must be visible")
	}
}

func TestSearch_StoreErrorStartsFresh(t *testing.T) {
	h, sessions := newTestServer(t, pagedSearcher(120), Options{})
	b := &browser{t: t, h: h}
	b.update(http.MethodPost, "/search", "searchQuery=cats")
	first := b.cookie.Value

	sessions.getErr = errors.New("connection refused")
	u := b.update(http.MethodPost, "/more", "")

	if u.CardsHTML != "" {
		t.Error("load more on a fresh session must do nothing")
	}
	if b.cookie.Value == first {
		t.Error("expected a new session id")
	}
}

func TestSession_UnknownCookieReplaced(t *testing.T) {
	h, _ := newTestServer(t, pagedSearcher(10), Options{Cookie: CookieConfig{MaxAge: time.Hour}})
	b := &browser{t: t, h: h, cookie: &http.Cookie{Name: "pixgallery_session", Value: "not-a-uuid"}}

	b.do(http.MethodGet, "/", "", false)

	if b.cookie.Value == "not-a-uuid" {
		t.Fatal("invalid session id must be replaced")
	}
	if b.cookie.MaxAge != 3600 {
		t.Errorf("max age = %d", b.cookie.MaxAge)
	}
}

// --- JSON API ---

func TestSearchImages(t *testing.T) {
	h, _ := newTestServer(t, pagedSearcher(50), Options{})

	rr := doRequest(h, http.MethodGet, "/api/v1/images?q=cats&page=2", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	var res SearchResult
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Query != "cats" || res.Page != 2 || res.PerPage != 40 || res.TotalHits != 50 {
		t.Errorf("unexpected result header: %+v", res)
	}
	if len(res.Items) != 10 || res.HasMore {
		t.Errorf("items = %d, hasMore = %v", len(res.Items), res.HasMore)
	}
	if res.Items[0].ID != 40 || res.Items[0].LargeImageURL != "https://cdn/40_1280.jpg" {
		t.Errorf("first item = %+v", res.Items[0])
	}
}

func TestSearchImages_DefaultPage(t *testing.T) {
	h, _ := newTestServer(t, pagedSearcher(50), Options{})

	rr := doRequest(h, http.MethodGet, "/api/v1/images?q=cats", "", nil)

	var res SearchResult
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Page != 1 || len(res.Items) != 40 || !res.HasMore {
		t.Errorf("page=%d items=%d hasMore=%v", res.Page, len(res.Items), res.HasMore)
	}
}

func TestSearchImages_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		fetchErr error
		status   int
		code     ErrorCode
	}{
		{"missing q", "/api/v1/images", nil, http.StatusBadRequest, ErrorCodeBadRequest},
		{"blank q", "/api/v1/images?q=+", nil, http.StatusBadRequest, ErrorCodeBadRequest},
		{"page not a number", "/api/v1/images?q=cats&page=abc", nil, http.StatusBadRequest, ErrorCodeBadRequest},
		{"page zero", "/api/v1/images?q=cats&page=0", nil, http.StatusBadRequest, ErrorCodeBadRequest},
		{"network", "/api/v1/images?q=cats", domain.ErrNetwork, http.StatusBadGateway, ErrorCodeUpstreamError},
		{"parse", "/api/v1/images?q=cats", domain.ErrParse, http.StatusBadGateway, ErrorCodeUpstreamError},
		{
			"rate limited", "/api/v1/images?q=cats",
			fmt.Errorf("%w: %w", domain.ErrNetwork, domain.ErrRateLimited),
			http.StatusTooManyRequests, ErrorCodeRateLimited,
		},
		{
			"quota exceeded", "/api/v1/images?q=cats",
			fmt.Errorf("quota check: %w", domain.ErrQuotaExceeded),
			http.StatusTooManyRequests, ErrorCodeQuotaExceeded,
		},
		{"unexpected", "/api/v1/images?q=cats", errors.New("boom"), http.StatusInternalServerError, ErrorCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := pagedSearcher(10)
			if tt.fetchErr != nil {
				searcher.fetchFn = func(context.Context, string, int) (page.Page, error) {
					return page.Page{}, tt.fetchErr
				}
			}
			h, _ := newTestServer(t, searcher, Options{})

			rr := doRequest(h, http.MethodGet, tt.path, "", nil)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.status, rr.Body.String())
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if errResp.Code != tt.code {
				t.Errorf("code = %s, want %s", errResp.Code, tt.code)
			}
			if errResp.Code == ErrorCodeInternalError && errResp.Message != "internal error" {
				t.Errorf("internal details leaked: %s", errResp.Message)
			}
		})
	}
}

func TestSearchImages_CORS(t *testing.T) {
	h, _ := newTestServer(t, pagedSearcher(10), Options{AllowedOrigins: []string{"https://example.com"}})

	rr := doRequest(h, http.MethodGet, "/api/v1/images?q=cats", "", map[string]string{"Origin": "https://example.com"})

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("allow origin = %q", got)
	}

	rr = doRequest(h, http.MethodGet, "/api/v1/images?q=cats", "", map[string]string{"Origin": "https://evil.test"})
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow origin %q", got)
	}
}

// --- Health, metrics, static ---

func TestHealthCheck(t *testing.T) {
	h, _ := newTestServer(t, pagedSearcher(0), Options{})

	rr := doRequest(h, http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["database"] != "ok" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHealthCheck_Degraded(t *testing.T) {
	h, _ := newTestServerWithHealth(t, pagedSearcher(0), Options{}, &mockPinger{err: errors.New("down")})

	rr := doRequest(h, http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestServer(t, pagedSearcher(0), Options{})

	rr := doRequest(h, http.MethodGet, "/metrics", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestStaticAssets(t *testing.T) {
	h, _ := newTestServer(t, pagedSearcher(0), Options{})

	for path, ct := range map[string]string{
		"/static/app.js":    "application/javascript",
		"/static/style.css": "text/css",
	} {
		rr := doRequest(h, http.MethodGet, path, "", nil)
		if rr.Code != http.StatusOK {
			t.Errorf("%s: status %d", path, rr.Code)
		}
		if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, ct) {
			t.Errorf("%s: content type %s", path, got)
		}
		if rr.Body.Len() == 0 {
			t.Errorf("%s: empty body", path)
		}
	}
}
