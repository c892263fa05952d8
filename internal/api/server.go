// Package api exposes the validate/repair/layout pipeline over HTTP.
//
// All endpoints are JSON. Graph-processing endpoints are stateless and
// accept the graph in the request body; the /v1/graphs endpoints
// persist documents through the configured store.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deciviz/deciviz/pkg/pipeline"
	"github.com/deciviz/deciviz/pkg/store"
)

// Server holds the shared collaborators for all handlers.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates an API server. A nil store disables the /v1/graphs
// endpoints (they answer 404).
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the HTTP routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealthz)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/repair", s.handleRepair)
		r.Post("/layout", s.handleLayout)
		r.Post("/export", s.handleExport)

		if s.store != nil {
			r.Route("/graphs", func(r chi.Router) {
				r.Get("/", s.handleListGraphs)
				r.Post("/", s.handleSaveGraph)
				r.Get("/{id}", s.handleGetGraph)
				r.Delete("/{id}", s.handleDeleteGraph)
			})
		}
	})

	return r
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
