package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/pkg/bqm"
	"github.com/aretw0/graft/pkg/core"
)

// Solver defines the solving surface exposed over HTTP.
type Solver interface {
	Sample(ctx context.Context, problem any, opts ...graft.SampleOption) (*bqm.SampleSet, error)
}

// Server routes solve requests to a Solver.
type Server struct {
	solver   Solver
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// Option configures the HTTP server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics exposes the registry on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// NewHandler creates the HTTP handler for the solver.
func NewHandler(solver Solver, opts ...Option) http.Handler {
	server := &Server{
		solver: solver,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/healthz", server.health)
	r.Post("/api/solve", server.solve)
	if server.gatherer != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// SolveRequest is the POST /api/solve request body.
type SolveRequest struct {
	Problem       map[string]any `json:"problem"`
	InitialSample map[string]int `json:"initial_sample,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": graft.Version,
	})
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	var body SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("solve: invalid request body", "err", err)
		return
	}
	if body.Problem == nil {
		http.Error(w, "Missing problem", http.StatusBadRequest)
		return
	}

	m, err := bqm.FromMap(body.Problem)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid problem: %v", err), http.StatusBadRequest)
		s.logger.Warn("solve: invalid problem", "err", err)
		return
	}

	var opts []graft.SampleOption
	if body.InitialSample != nil {
		opts = append(opts, graft.WithInitialSample(body.InitialSample))
	}

	ss, err := s.solver.Sample(r.Context(), m, opts...)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrInvalidType) || errors.Is(err, core.ErrInvalidValue) {
			status = http.StatusBadRequest
		}
		http.Error(w, fmt.Sprintf("Solve error: %v", err), status)
		s.logger.Error("solve failed", "err", err)
		return
	}

	writeJSON(w, s.logger, http.StatusOK, ss)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
