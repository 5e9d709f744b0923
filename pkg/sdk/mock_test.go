package pixgallery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/domain/image"
	"github.com/kailas-cloud/pixgallery/internal/domain/page"
	"github.com/kailas-cloud/pixgallery/internal/domain/session"
	galleryuc "github.com/kailas-cloud/pixgallery/internal/usecase/gallery"
	healthuc "github.com/kailas-cloud/pixgallery/internal/usecase/health"
)

// --- galleryUseCase mock ---

type mockGalleryUC struct {
	submitFn   func(ctx context.Context, s session.Session, rawTerm string, ui galleryuc.UI) session.Session
	loadMoreFn func(ctx context.Context, s session.Session, ui galleryuc.UI) session.Session
	lookupFn   func(ctx context.Context, rawTerm string, pageNum int) (page.Page, error)
}

func (m *mockGalleryUC) Submit(
	ctx context.Context, s session.Session, rawTerm string, ui galleryuc.UI,
) session.Session {
	return m.submitFn(ctx, s, rawTerm, ui)
}

func (m *mockGalleryUC) LoadMore(ctx context.Context, s session.Session, ui galleryuc.UI) session.Session {
	return m.loadMoreFn(ctx, s, ui)
}

func (m *mockGalleryUC) Lookup(ctx context.Context, rawTerm string, pageNum int) (page.Page, error) {
	return m.lookupFn(ctx, rawTerm, pageNum)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- searcher fake ---

// pagedSearcher serves totalHits images in pages of perPage.
type pagedSearcher struct {
	totalHits int
	perPage   int
	err       error
	calls     []int
}

func (s *pagedSearcher) FetchPage(_ context.Context, _ string, pageNum int) (page.Page, error) {
	s.calls = append(s.calls, pageNum)
	if s.err != nil {
		return page.Page{}, s.err
	}
	first := (pageNum - 1) * s.perPage
	var items []image.Image
	for i := first; i < first+s.perPage && i < s.totalHits; i++ {
		items = append(items, testImage(i+1))
	}
	return page.New(s.totalHits, s.totalHits, items), nil
}

// --- helpers ---

func testImage(id int) image.Image {
	return image.New(id,
		fmt.Sprintf("https://cdn.example/%d_640.jpg", id),
		fmt.Sprintf("https://cdn.example/%d_1280.jpg", id),
		fmt.Sprintf("https://pixabay.com/photos/%d/", id),
		"yellow, flower",
		"alice",
		image.Stats{Likes: 1, Views: 2, Comments: 3, Downloads: 4},
	)
}

func testClient(svc galleryUseCase) *Client {
	return &Client{gallerySvc: svc}
}

// testServiceClient wires a real gallery service over s.
func testServiceClient(s galleryuc.Searcher) *Client {
	return &Client{gallerySvc: galleryuc.New(s, zap.NewNop())}
}

// newAPIServer fakes the image-search endpoint with totalHits results.
func newAPIServer(t *testing.T, totalHits int, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"total":%d,"totalHits":%d,"hits":[`, totalHits, totalHits)
		first := (pageNum - 1) * perPage
		for i := first; i < first+perPage && i < totalHits; i++ {
			if i > first {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w,
				`{"id":%d,"pageURL":"p","tags":"t","webformatURL":"w%d","largeImageURL":"l%d",`+
					`"views":1,"downloads":2,"likes":3,"comments":4,"user":"u"}`,
				i+1, i+1, i+1)
		}
		fmt.Fprint(w, "]}")
	}))
	t.Cleanup(srv.Close)
	return srv
}
