package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aretw0/graft/pkg/core"
)

// Metrics holds the Prometheus collectors for workflow execution.
// Create one per registry with NewMetrics and attach it to runs via
// Hooks().
type Metrics struct {
	// RunsTotal counts runnable executions by runnable name and outcome
	// (success, error).
	RunsTotal *prometheus.CounterVec

	// RunDuration records runnable execution duration in seconds.
	RunDuration *prometheus.HistogramVec
}

// NewMetrics registers the workflow collectors with reg and returns
// them. Pass prometheus.DefaultRegisterer to use the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graft",
			Subsystem: "runnable",
			Name:      "runs_total",
			Help:      "Total runnable executions by outcome",
		}, []string{"runnable", "outcome"}),
		RunDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "graft",
			Subsystem: "runnable",
			Name:      "run_duration_seconds",
			Help:      "Runnable execution duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"runnable"}),
	}
}

// Hooks returns run hooks that record every execution into the
// collectors. The returned value can be passed to core.WithRunHooks.
func (m *Metrics) Hooks() core.RunHooks {
	return core.RunHooks{
		OnRunEnd: func(_ context.Context, ev *core.RunEvent) {
			outcome := "success"
			if ev.Err != nil {
				outcome = "error"
			}
			m.RunsTotal.WithLabelValues(ev.Runnable, outcome).Inc()
			m.RunDuration.WithLabelValues(ev.Runnable).Observe(ev.Duration.Seconds())
		},
	}
}
