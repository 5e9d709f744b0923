package chi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/domain"
	"github.com/kailas-cloud/pixgallery/internal/domain/notice"
	"github.com/kailas-cloud/pixgallery/internal/domain/query"
	"github.com/kailas-cloud/pixgallery/internal/domain/session"
	"github.com/kailas-cloud/pixgallery/internal/logger"
	galleryuc "github.com/kailas-cloud/pixgallery/internal/usecase/gallery"
	healthuc "github.com/kailas-cloud/pixgallery/internal/usecase/health"
	usageuc "github.com/kailas-cloud/pixgallery/internal/usecase/usage"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// SessionStore persists gallery sessions between requests.
type SessionStore interface {
	Get(ctx context.Context, id string) (session.Session, error)
	Save(ctx context.Context, id string, s session.Session) error
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Options configures the HTTP server.
type Options struct {
	// APIKeys guards /api/v1. Empty disables auth.
	APIKeys        []string
	AllowedOrigins []string
	Cookie         CookieConfig
	Notice         notice.Options
}

// Server serves the gallery page, its actions and the JSON search API.
type Server struct {
	gallery       *galleryuc.Service
	sessions      SessionStore
	health        *healthuc.Service
	usage         *usageuc.Service
	opts          Options
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP server.
func NewServer(
	gallery *galleryuc.Service,
	sessions SessionStore,
	health *healthuc.Service,
	usage *usageuc.Service,
	opts Options,
	logger *zap.Logger,
) *Server {
	if opts.Cookie.Name == "" {
		opts.Cookie.Name = "pixgallery_session"
	}
	if opts.Notice == (notice.Options{}) {
		opts.Notice = notice.DefaultOptions()
	}
	s := &Server{
		gallery:  gallery,
		sessions: sessions,
		health:   health,
		usage:    usage,
		opts:     opts,
		logger:   logger,
	}
	// ErrRateLimited is checked before ErrNetwork, which it is wrapped with.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyTerm, http.StatusBadRequest, ErrorCodeBadRequest),
		sentinelHandler(domain.ErrInvalidPage, http.StatusBadRequest, ErrorCodeBadRequest),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
		sentinelHandler(domain.ErrQuotaExceeded, http.StatusTooManyRequests, ErrorCodeQuotaExceeded),
		sentinelHandler(domain.ErrNetwork, http.StatusBadGateway, ErrorCodeUpstreamError),
		sentinelHandler(domain.ErrParse, http.StatusBadGateway, ErrorCodeUpstreamError),
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Index)
	r.Post("/search", s.Search)
	r.Post("/more", s.LoadMore)
	r.Get("/static/app.js", handleAppJS)
	r.Get("/static/style.css", handleStyleCSS)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		if len(s.opts.AllowedOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.opts.AllowedOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Authorization"},
				ExposedHeaders: []string{"X-Request-ID"},
				MaxAge:         300,
			}))
		}
		r.Use(BearerAuthMiddleware(s.opts.APIKeys))
		r.Get("/images", s.SearchImages)
		r.Get("/usage", s.GetUsage)
	})
}

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	_, sess := s.loadSession(w, r)
	s.writePage(w, r, sess, nil)
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid form body")
		return
	}

	id, sess := s.loadSession(w, r)
	ui := newResponseUI(s.opts.Notice)
	next := s.gallery.Submit(r.Context(), sess, r.PostFormValue("searchQuery"), ui)
	s.saveSession(r.Context(), id, next)

	s.respond(w, r, next, ui)
}

// LoadMore handles POST /more.
func (s *Server) LoadMore(w http.ResponseWriter, r *http.Request) {
	id, sess := s.loadSession(w, r)
	ui := newResponseUI(s.opts.Notice)
	next := s.gallery.LoadMore(r.Context(), sess, ui)
	s.saveSession(r.Context(), id, next)

	s.respond(w, r, next, ui)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// respond sends the outcome of a gallery action as JSON for the script or
// as a full page for plain form posts.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, sess session.Session, ui *responseUI) {
	if !wantsJSON(r) {
		s.writePage(w, r, sess, ui.notices)
		return
	}

	cardsHTML, err := renderCards(ui.appended)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, GalleryUpdate{
		CardsHTML:       cardsHTML,
		Notices:         ui.notices,
		LoadMore:        ui.loadMoreVisible(sess.LoadMoreVisible()),
		RefreshLightbox: ui.refresh,
		Reset:           ui.reset,
		Scroll:          ui.scroll,
	})
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, sess session.Session, notices []NoticeItem) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := renderPage(w, &pageData{
		Term:          sess.Query().Term(),
		Cards:         sess.Cards(),
		LoadMore:      sess.LoadMoreVisible(),
		Notices:       notices,
		Options:       s.opts.Notice,
		MaxTermLength: query.MaxTermLength,
	})
	if err != nil {
		logger.FromContextOr(r.Context(), s.logger).Error("Failed to render page", zap.Error(err))
	}
}

// loadSession returns the caller's session id and state. A missing cookie,
// an expired session or an unreadable store all start a fresh session.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (string, session.Session) {
	log := logger.FromContextOr(r.Context(), s.logger)

	if c, err := r.Cookie(s.opts.Cookie.Name); err == nil && isSessionID(c.Value) {
		sess, err := s.sessions.Get(r.Context(), c.Value)
		if err == nil {
			return c.Value, sess
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			log.Warn("Failed to load session", zap.String("session_id", c.Value), zap.Error(err))
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.Cookie.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.opts.Cookie.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   s.opts.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, session.New()
}

func (s *Server) saveSession(ctx context.Context, id string, sess session.Session) {
	if err := s.sessions.Save(ctx, id, sess); err != nil {
		logger.FromContextOr(ctx, s.logger).Error("Failed to save session",
			zap.String("session_id", id), zap.Error(err))
	}
}

func isSessionID(v string) bool {
	return uuid.Validate(v) == nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
