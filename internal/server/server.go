// Package server implements the CDM Lens HTTP API.
//
// The API exposes catalog CRUD, CSV import/export, and the graph pipeline:
//
//	GET    /healthz
//	GET    /metrics
//	GET    /api/v1/objects
//	POST   /api/v1/objects
//	GET    /api/v1/objects/{id}
//	PUT    /api/v1/objects/{id}
//	DELETE /api/v1/objects/{id}
//	GET    /api/v1/objects/export        (CSV)
//	POST   /api/v1/objects/import        (CSV)
//	GET    /api/v1/lists
//	POST   /api/v1/lists
//	GET    /api/v1/lists/{id}
//	PUT    /api/v1/lists/{id}
//	DELETE /api/v1/lists/{id}
//	PUT    /api/v1/views/{name}          (snapshot the current projection)
//	GET    /api/v1/views/{name}
//	GET    /api/v1/graph                 (?mode=&format=&lists=&detailed=&refresh=&view=)
//
// Errors use a JSON envelope {"code": "...", "error": "..."} carrying the
// machine-readable codes from pkg/errors.
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cdmlens/cdmlens/pkg/layout"
	"github.com/cdmlens/cdmlens/pkg/pipeline"
	"github.com/cdmlens/cdmlens/pkg/store"
)

// Server holds the API's collaborators.
type Server struct {
	store       store.Store
	runner      *pipeline.Runner
	logger      *log.Logger
	defaultMode layout.Mode
}

// New creates a server. A nil logger falls back to log.Default; an empty
// defaultMode falls back to the pipeline default.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger, defaultMode layout.Mode) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if defaultMode == "" {
		defaultMode = pipeline.DefaultMode
	}
	return &Server{
		store:       st,
		runner:      runner,
		logger:      logger,
		defaultMode: defaultMode,
	}
}

// Router builds the chi route tree with observability middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/objects", func(r chi.Router) {
			r.Get("/", s.handleListObjects)
			r.Post("/", s.handleCreateObject)
			r.Get("/export", s.handleExportCSV)
			r.Post("/import", s.handleImportCSV)
			r.Get("/{id}", s.handleGetObject)
			r.Put("/{id}", s.handlePutObject)
			r.Delete("/{id}", s.handleDeleteObject)
		})
		r.Route("/lists", func(r chi.Router) {
			r.Get("/", s.handleListLists)
			r.Post("/", s.handleCreateList)
			r.Get("/{id}", s.handleGetList)
			r.Put("/{id}", s.handlePutList)
			r.Delete("/{id}", s.handleDeleteList)
		})
		r.Route("/views", func(r chi.Router) {
			r.Put("/{name}", s.handleSaveView)
			r.Get("/{name}", s.handleGetView)
		})
		r.Get("/graph", s.handleGraph)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
