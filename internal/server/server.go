// Package server exposes the season queries to the browser frontend
// over read-only HTTP endpoints, plus the static dashboard page.
package server

import (
	"context"
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/f1stats/f1-stats-server/pkg/cache"
	"github.com/f1stats/f1-stats-server/pkg/season"
)

//go:embed web
var webFS embed.FS

// Server routes frontend requests to the season service. The optional
// cache store memoizes encoded success bodies per operation and season
// so repeated lookups skip the upstream walk entirely.
type Server struct {
	service *season.Service
	store   cache.Store
	ready   func(context.Context) error
	logger  zerolog.Logger
}

// New creates a server. store may be nil to disable memoization; ready
// may be nil when no backend needs a readiness probe.
func New(svc *season.Service, store cache.Store, ready func(context.Context) error, logger zerolog.Logger) *Server {
	return &Server{
		service: svc,
		store:   store,
		ready:   ready,
		logger:  logger,
	}
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// The frontend may be served from anywhere; everything here is
	// public read-only data.
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"*"},
	}).Handler)

	r.Get("/standings/drivers", s.queryHandler("driver_standings",
		func(ctx context.Context, year int) (any, error) {
			return s.service.DriverStandings(ctx, year)
		}))
	r.Get("/standings/constructors", s.queryHandler("constructor_standings",
		func(ctx context.Context, year int) (any, error) {
			return s.service.ConstructorStandings(ctx, year)
		}))
	r.Get("/races/points", s.queryHandler("points_progression",
		func(ctx context.Context, year int) (any, error) {
			return s.service.PointsProgression(ctx, year)
		}))
	r.Get("/stats/pilots", s.queryHandler("pilot_stats",
		func(ctx context.Context, year int) (any, error) {
			return s.service.PilotStats(ctx, year)
		}))

	r.Get("/health", s.healthHandler)
	r.Get("/ready", s.readyHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	staticFS, err := fs.Sub(webFS, "web")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))
	r.Get("/", s.indexHandler(staticFS))

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			s.logger.Warn().Err(err).Msg("Readiness check failed")
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// indexHandler serves the dashboard page.
func (s *Server) indexHandler(staticFS fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fs.ReadFile(staticFS, "index.html")
		if err != nil {
			http.Error(w, "index unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}
