package api

import (
	"log/slog"
	"net/http"

	"github.com/flowershow/flowershow/internal/config"
	"github.com/flowershow/flowershow/internal/content"
	"github.com/flowershow/flowershow/internal/metrics"
	"github.com/flowershow/flowershow/internal/sitemap"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the HTTP API server for a flowershow site.
type Server struct {
	router       chi.Router
	orchestrator *content.Orchestrator
	builder      *sitemap.Builder
	metrics      *metrics.Metrics
	stats        *metrics.BuildStats
	log          *slog.Logger
	cfg          *config.Config
}

// NewServer creates and configures the HTTP server. It subscribes to the
// orchestrator's rebuilds, so create it before starting the orchestrator.
func NewServer(orch *content.Orchestrator, builder *sitemap.Builder, m *metrics.Metrics, stats *metrics.BuildStats, log *slog.Logger, cfg *config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		builder:      builder,
		metrics:      m,
		stats:        stats,
		log:          log,
		cfg:          cfg,
	}
	orch.OnRebuild(s.recordBuild)
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(s.metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/search.json", s.handleSearchIndex)
	r.Get("/api/sitemap", s.handleSitemap)
	r.Get("/api/toc/*", s.handlePageToc)
	r.Post("/api/toc/current", s.handleCurrentSection)
	r.Post("/api/outline", s.handleOutline)
	r.Get("/api/stats", s.handleStats)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// Authenticated endpoints exist only when a key is configured.
	if s.cfg.APIKey != "" {
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

			r.Post("/api/rebuild", s.handleRebuild)
		})
	}

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	index := s.orchestrator.Current()
	if index == nil {
		jsonError(w, "index not built", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"build_id": index.BuildID,
		"pages":    len(index.Pages),
	})
}

// currentIndex writes a 503 and returns nil before the first successful build.
func (s *Server) currentIndex(w http.ResponseWriter) *content.Index {
	index := s.orchestrator.Current()
	if index == nil {
		jsonError(w, "index not built", http.StatusServiceUnavailable)
	}
	return index
}
