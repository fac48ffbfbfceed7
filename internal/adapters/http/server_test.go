package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/pkg/observability"
	"github.com/aretw0/graft/pkg/samplers/tabu"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	solver, err := graft.NewSampler(tabu.New(tabu.WithSeed(1)))
	require.NoError(t, err)
	return NewHandler(solver, opts...)
}

func triangleRequest() string {
	return `{
		"problem": {
			"vartype": "SPIN",
			"quadratic": [
				{"u": "a", "v": "b", "bias": 1},
				{"u": "b", "v": "c", "bias": 1},
				{"u": "c", "v": "a", "bias": -1}
			]
		}
	}`
}

func TestGetHealth(t *testing.T) {
	handler := newTestHandler(t)

	req, _ := http.NewRequest("GET", "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["version"])
}

func TestSolve(t *testing.T) {
	handler := newTestHandler(t)

	req, _ := http.NewRequest("POST", "/api/solve", strings.NewReader(triangleRequest()))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Records []struct {
			Energy float64 `json:"energy"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Records)
	assert.Equal(t, -3.0, resp.Records[0].Energy)
}

func TestSolve_WithInitialSample(t *testing.T) {
	handler := newTestHandler(t)

	body := `{
		"problem": {
			"vartype": "SPIN",
			"quadratic": [
				{"u": "a", "v": "b", "bias": 1},
				{"u": "b", "v": "c", "bias": 1},
				{"u": "c", "v": "a", "bias": -1}
			]
		},
		"initial_sample": {"a": 1, "b": 1, "c": 1}
	}`
	req, _ := http.NewRequest("POST", "/api/solve", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestSolve_BadInitialSample(t *testing.T) {
	handler := newTestHandler(t)

	body := `{
		"problem": {"vartype": "SPIN", "linear": {"a": 1}},
		"initial_sample": {"wrong": 1}
	}`
	req, _ := http.NewRequest("POST", "/api/solve", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSolve_InvalidBody(t *testing.T) {
	handler := newTestHandler(t)

	req, _ := http.NewRequest("POST", "/api/solve", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSolve_MissingProblem(t *testing.T) {
	handler := newTestHandler(t)

	req, _ := http.NewRequest("POST", "/api/solve", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	solver, err := graft.NewSampler(tabu.New(), graft.WithRunHooks(metrics.Hooks()))
	require.NoError(t, err)
	handler := NewHandler(solver, WithMetrics(reg))

	solveReq, _ := http.NewRequest("POST", "/api/solve", strings.NewReader(triangleRequest()))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, solveReq)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	req, _ := http.NewRequest("GET", "/metrics", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "graft_runnable_runs_total")
}

func TestMetricsDisabledByDefault(t *testing.T) {
	handler := newTestHandler(t)

	req, _ := http.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
