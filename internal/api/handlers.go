package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/deciviz/deciviz/pkg/export"
	"github.com/deciviz/deciviz/pkg/graph"
	"github.com/deciviz/deciviz/pkg/layout"
	"github.com/deciviz/deciviz/pkg/pipeline"
	"github.com/deciviz/deciviz/pkg/repair"
	"github.com/deciviz/deciviz/pkg/store"
	"github.com/deciviz/deciviz/pkg/validate"
)

// graphRequest is the shared request shape for processing endpoints.
type graphRequest struct {
	Graph graph.Graph `json:"graph"`

	// Layout options (used by /layout).
	Preset      layout.Preset      `json:"preset,omitempty"`
	Spacing     layout.SpacingTier `json:"spacing,omitempty"`
	PreserveIDs []string           `json:"preserve_ids,omitempty"`
	Policy      layout.Overrides   `json:"policy,omitempty"`

	// Repair options (used by /repair).
	All     bool           `json:"all,omitempty"`
	Actions []graph.Action `json:"actions,omitempty"`

	// Export options (used by /export).
	Format         export.Format `json:"format,omitempty"`
	ShowConfidence bool          `json:"show_confidence,omitempty"`

	Refresh bool `json:"refresh,omitempty"`
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (graphRequest, bool) {
	var req graphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body: %v", err)
		return req, false
	}
	req.Graph.NormalizeKinds()
	return req, true
}

// handleValidate runs the detectors and returns the health report.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	health, err := s.runner.Validate(r.Context(), req.Graph, pipeline.Options{Refresh: req.Refresh})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, health)
}

// repairResponse carries the repaired graph and the fresh health report.
type repairResponse struct {
	Graph      graph.Graph     `json:"graph"`
	FixedCount int             `json:"fixed_count"`
	Health     validate.Health `json:"health"`
}

// handleRepair applies explicit actions, or every suggested fix when
// "all" is set, and returns the repaired graph with its new report.
func (s *Server) handleRepair(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	g := req.Graph
	fixed := 0
	if req.All {
		res := repair.QuickFixAll(g.Nodes, g.Edges)
		g.Nodes, g.Edges = res.Nodes, res.Edges
		fixed = res.FixedCount
	} else {
		for _, action := range req.Actions {
			g.Nodes, g.Edges = repair.Apply(g.Nodes, g.Edges, action)
			fixed++
		}
	}

	writeJSON(w, http.StatusOK, repairResponse{
		Graph:      g,
		FixedCount: fixed,
		Health:     validate.Validate(g.Nodes, g.Edges),
	})
}

// handleLayout computes positions for the posted graph.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	opts := pipeline.Options{
		Preset:      req.Preset,
		Spacing:     req.Spacing,
		PreserveIDs: req.PreserveIDs,
		Policy:      req.Policy,
		Refresh:     req.Refresh,
	}
	res, err := s.runner.ComputeLayout(r.Context(), req.Graph, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleExport renders the posted graph in the requested format.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	format := req.Format
	if format == "" {
		format = export.FormatDOT
	}
	data, err := export.Export(r.Context(), req.Graph, format, export.Options{
		ShowConfidence: req.ShowConfidence,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	switch format {
	case export.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	case export.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleListGraphs returns the stored document IDs.
func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"graphs": ids})
}

// handleSaveGraph creates or replaces a document.
func (s *Server) handleSaveGraph(w http.ResponseWriter, r *http.Request) {
	var doc store.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		badRequest(w, "invalid request body: %v", err)
		return
	}
	doc.Graph.NormalizeKinds()

	if err := s.store.Save(r.Context(), &doc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// handleGetGraph loads a document by ID.
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleDeleteGraph removes a document.
func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
