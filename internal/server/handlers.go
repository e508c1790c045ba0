package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cdmlens/cdmlens/pkg/catalog"
	"github.com/cdmlens/cdmlens/pkg/errors"
	"github.com/cdmlens/cdmlens/pkg/graph"
	"github.com/cdmlens/cdmlens/pkg/pipeline"
)

// =============================================================================
// Responses
// =============================================================================

// errorEnvelope is the JSON error body.
type errorEnvelope struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP statuses and writes the envelope.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeObjectNotFound, errors.ErrCodeGraphNotFound, errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidObject, errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidMode, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidCSV:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorEnvelope{Code: code, Error: errors.UserMessage(err)})
}

// =============================================================================
// Object CRUD
// =============================================================================

func (s *Server) handleListObjects(w http.ResponseWriter, r *http.Request) {
	objects, err := s.store.ListObjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, objects)
}

func (s *Server) handleCreateObject(w http.ResponseWriter, r *http.Request) {
	var o catalog.Object
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode object"))
		return
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if err := s.store.PutObject(r.Context(), o); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleGetObject(w http.ResponseWriter, r *http.Request) {
	o, err := s.store.GetObject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handlePutObject(w http.ResponseWriter, r *http.Request) {
	var o catalog.Object
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode object"))
		return
	}
	id := chi.URLParam(r, "id")
	if o.ID != "" && o.ID != id {
		writeError(w, errors.New(errors.ErrCodeInvalidInput,
			"body id %q does not match path id %q", o.ID, id))
		return
	}
	o.ID = id
	if err := s.store.PutObject(r.Context(), o); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleDeleteObject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteObject(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// List CRUD
// =============================================================================

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.store.ListLists(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var l catalog.List
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode list"))
		return
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if err := s.store.PutList(r.Context(), l); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.GetList(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handlePutList(w http.ResponseWriter, r *http.Request) {
	var l catalog.List
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode list"))
		return
	}
	id := chi.URLParam(r, "id")
	if l.ID != "" && l.ID != id {
		writeError(w, errors.New(errors.ErrCodeInvalidInput,
			"body id %q does not match path id %q", l.ID, id))
		return
	}
	l.ID = id
	if err := s.store.PutList(r.Context(), l); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteList(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CSV bulk edit
// =============================================================================

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	objects, err := s.store.ListObjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="objects.csv"`)
	if err := catalog.WriteCSV(objects, w); err != nil {
		s.logger.Error("csv export failed mid-stream", "err", err)
	}
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	objects, err := catalog.ReadCSV(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, o := range objects {
		if err := s.store.PutObject(r.Context(), o); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(objects)})
}

// =============================================================================
// Saved views
// =============================================================================

// handleSaveView snapshots the current catalog projection under a name, so
// the view can be rendered later even after the catalog changes.
func (s *Server) handleSaveView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	opts := pipeline.Options{
		IncludeLists: r.URL.Query().Get("lists") == "true",
		Refresh:      true,
	}

	g, err := s.runner.Project(r.Context(), s.store, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.PutGraph(r.Context(), name, g); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":  name,
		"nodes": len(g.Nodes),
		"edges": len(g.Edges),
	})
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.GetGraph(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// =============================================================================
// Graph pipeline
// =============================================================================

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode := q.Get("mode")
	if mode == "" {
		mode = string(s.defaultMode)
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatPlan
	}

	opts := pipeline.Options{
		Mode:         mode,
		Formats:      []string{format},
		IncludeLists: q.Get("lists") == "true",
		Detailed:     q.Get("detailed") == "true",
		Refresh:      q.Get("refresh") == "true",
	}

	// A saved view renders from its snapshot; otherwise project live.
	g, err := s.graphSource(r, opts, q.Get("view"))
	if err != nil {
		writeError(w, err)
		return
	}
	graphViewSize.WithLabelValues("nodes").Set(float64(len(g.Nodes)))
	graphViewSize.WithLabelValues("edges").Set(float64(len(g.Edges)))

	result, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	switch format {
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(result.Artifacts[format])
	case pipeline.FormatPNG:
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(result.Artifacts[format])
	case pipeline.FormatDOT:
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write(result.Artifacts[format])
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"graph":      result.Graph,
			"plans":      result.Plans,
			"graph_hash": result.GraphHash,
			"stats":      result.Stats,
			"cache_info": result.CacheInfo,
		})
	}
}

// graphSource loads a saved view when one is named, otherwise projects the
// live catalog.
func (s *Server) graphSource(r *http.Request, opts pipeline.Options, view string) (graph.Graph, error) {
	if view != "" {
		return s.store.GetGraph(r.Context(), view)
	}
	return s.runner.Project(r.Context(), s.store, opts)
}
