package chi

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/pixgallery/internal/domain"
	"github.com/kailas-cloud/pixgallery/internal/domain/page"
	"github.com/kailas-cloud/pixgallery/internal/domain/pagination"
	"github.com/kailas-cloud/pixgallery/internal/domain/query"
)

// SearchImagesParams are the query parameters of GET /api/v1/images.
type SearchImagesParams struct {
	Q    string
	Page *int
}

// SearchImages handles GET /api/v1/images.
func (s *Server) SearchImages(w http.ResponseWriter, r *http.Request) {
	var params SearchImagesParams

	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &params.Q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter q: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &params.Page); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter page: "+err.Error())
		return
	}

	pageNum := 1
	if params.Page != nil {
		pageNum = *params.Page
	}

	p, err := s.gallery.Lookup(r.Context(), params.Q, pageNum)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	term, _ := query.NormalizeTerm(params.Q)
	writeJSON(w, http.StatusOK, searchResultFromPage(term, pageNum, p))
}

func searchResultFromPage(term string, pageNum int, p page.Page) SearchResult {
	rendered := (pageNum-1)*domain.PerPage + p.Len()
	decision := pagination.Decide(pageNum, p.Len(), rendered, p.TotalHits())

	items := make([]ImageItem, p.Len())
	for i, img := range p.Items() {
		stats := img.Stats()
		items[i] = ImageItem{
			ID:            img.ID(),
			PageURL:       img.PageURL(),
			WebformatURL:  img.WebformatURL(),
			LargeImageURL: img.LargeImageURL(),
			Tags:          img.Tags(),
			User:          img.User(),
			Likes:         stats.Likes,
			Views:         stats.Views,
			Comments:      stats.Comments,
			Downloads:     stats.Downloads,
		}
	}

	return SearchResult{
		Query:     term,
		Page:      pageNum,
		PerPage:   domain.PerPage,
		Total:     p.Total(),
		TotalHits: p.TotalHits(),
		HasMore:   decision.Status == pagination.MoreAvailable,
		Items:     items,
	}
}
