package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/folio/internal/identity"
	"github.com/rpggio/folio/internal/metrics"
	"github.com/rpggio/folio/internal/workspace"
)

// Config contains HTTP server configuration.
type Config struct {
	Workspaces    *workspace.Set
	Authenticator *identity.Authenticator
	// MCP is mounted at /mcp when set.
	MCP     http.Handler
	Metrics *metrics.Metrics
	Limiter *RateLimiter
	Logger  *slog.Logger
}

// Server holds the REST handlers.
type Server struct {
	workspaces *workspace.Set
	logger     *slog.Logger
}

// NewServer creates the HTTP router: the REST API under /api plus health,
// metrics and MCP endpoints.
func NewServer(cfg Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(instrument(cfg.Metrics))

	srv := &Server{workspaces: cfg.Workspaces, logger: cfg.Logger}

	r.Get("/health", srv.handleHealth)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Authenticator))
		r.Use(RateLimitMiddleware(cfg.Limiter))

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", srv.listProjects)
			r.Post("/", srv.createProject)
			r.Post("/bulk-delete", srv.deleteProjects)
			r.Post("/bulk-tags", srv.tagProjects)
			r.Get("/export", srv.exportProjects)
			r.Post("/import", srv.importProjects)
			r.Post("/import/github", srv.importGitHub)
			r.Get("/{id}", srv.getProject)
			r.Patch("/{id}", srv.updateProject)
			r.Delete("/{id}", srv.deleteProject)
			r.Post("/{id}/enhance", srv.enhanceProject)
		})

		r.Get("/tags", srv.listTags)
		r.Get("/taxonomy", srv.getTaxonomy)
		r.Post("/taxonomy/normalize", srv.normalizeTags)

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", srv.listMatches)
			r.Post("/", srv.analyze)
			r.Get("/{id}", srv.getMatch)
			r.Delete("/{id}", srv.deleteMatch)
			r.Put("/{id}/requirements", srv.reanalyze)
			r.Post("/{id}/selection", srv.toggleSelection)
			r.Post("/{id}/proposal", srv.generateProposal)
		})

		r.Get("/activity", srv.listActivity)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// instrument records request counts and latency by route pattern.
func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			m.ObserveHTTP(route, r.Method, ww.Status(), start)
		})
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger == nil {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
