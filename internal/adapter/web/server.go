package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/leaflet"
)

// MapService is the slice of the pipeline the dashboard handlers need.
type MapService interface {
	FetchEvents(ctx context.Context, q domain.EventQuery) ([]domain.Record, error)
	BuildMap(ctx context.Context, q domain.EventQuery, rasterPath string) (*leaflet.Map, int, error)
	ExportMap(ctx context.Context, q domain.EventQuery, rasterPath string) (string, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Defaults seeds the dashboard form and backs any request that omits a
// query parameter.
type Defaults struct {
	StartDate    string
	EndDate      string
	MinMagnitude float64
	RasterPath   string
}

// Server exposes the dashboard page, the map endpoints, and the
// health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	svc        MapService
	defaults   Defaults
	logger     *slog.Logger
}

// NewServer creates the dashboard HTTP server and wires its routes.
func NewServer(addr string, svc MapService, ready ReadinessChecker, defaults Defaults, logger *slog.Logger) *Server {
	s := &Server{
		svc:      svc,
		defaults: defaults,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDashboard)
	r.Get("/map", s.handleMap)
	r.Get("/api/events", s.handleEvents)
	r.Post("/api/export", s.handleExport)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// Writes cover a full upstream catalog fetch, so this must
		// outlast the USGS client timeout.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
