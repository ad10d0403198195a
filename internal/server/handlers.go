package server

import (
	"io"
	"net/http"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/buildinfo"
	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

type analyzeResponse struct {
	ID     string          `json:"id"`
	Metric analysis.Metric `json:"metric"`
	Nodes  int             `json:"nodes"`
	Edges  int             `json:"edges"`
	Result any             `json:"result"`
}

type reportResponse struct {
	ID string `json:"id"`
	*analysis.Summary
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	m, err := metricFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts := s.options(r)
	g, err := s.load(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.runner.Analyze(r.Context(), g, m, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		ID:     requestIDFrom(r.Context()),
		Metric: m,
		Nodes:  g.NodeCount(),
		Edges:  g.EdgeCount(),
		Result: result,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	g, err := s.load(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	summary, err := s.runner.Summarize(r.Context(), g, s.options(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{ID: requestIDFrom(r.Context()), Summary: summary})
}

// load reads the size-limited request body and builds its graph.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*graph.Graph, error) {
	opts := s.options(r)
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	g, err := s.runner.Load(r.Context(), data, opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("loaded graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}
