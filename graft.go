package graft

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/graft/pkg/bqm"
	"github.com/aretw0/graft/pkg/core"
	"github.com/aretw0/graft/pkg/ports"
)

// Sampler is the high-level entry point for the graft library. It wraps a
// workflow and exposes it through the ports.Sampler contract: hand it a
// problem, get back a sample set.
type Sampler struct {
	workflow core.Runnable
	logger   *slog.Logger
	hooks    core.RunHooks
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithLogger sets a structured logger for workflow runs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sampler) { s.logger = logger }
}

// WithRunHooks attaches observability hooks to every workflow run.
func WithRunHooks(hooks core.RunHooks) Option {
	return func(s *Sampler) { s.hooks = hooks }
}

// NewSampler wraps a workflow as a problem sampler. The workflow must be a
// core.Runnable or a ports.Sampler (which is adapted onto the conventional
// problem and samples fields); anything else, including nil, is
// core.ErrInvalidType.
func NewSampler(workflow any, opts ...Option) (*Sampler, error) {
	var r core.Runnable
	switch w := workflow.(type) {
	case nil:
		return nil, fmt.Errorf("%w: workflow must not be nil", core.ErrInvalidType)
	case core.Runnable:
		r = w
	case ports.Sampler:
		wrapped, err := core.WrapProblemSampler(w)
		if err != nil {
			return nil, err
		}
		r = wrapped
	default:
		return nil, fmt.Errorf("%w: workflow must be a core.Runnable or ports.Sampler, got %T", core.ErrInvalidType, workflow)
	}

	s := &Sampler{workflow: r}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Runnable returns the underlying workflow.
func (s *Sampler) Runnable() core.Runnable { return s.workflow }

type sampleConfig struct {
	initial map[string]int
}

// SampleOption configures a single Sample call.
type SampleOption func(*sampleConfig)

// WithInitialSample seeds the workflow with a starting assignment instead of
// the default all-minimum sample. The assignment must cover exactly the
// model's variables.
func WithInitialSample(sample map[string]int) SampleOption {
	return func(cfg *sampleConfig) { cfg.initial = sample }
}

// Sample runs the workflow against the problem and returns the samples it
// produced. The problem must be a *bqm.Model (core.ErrInvalidType otherwise).
func (s *Sampler) Sample(ctx context.Context, problem any, opts ...SampleOption) (*bqm.SampleSet, error) {
	m, ok := problem.(*bqm.Model)
	if !ok || m == nil {
		return nil, fmt.Errorf("%w: problem must be a *bqm.Model, got %T", core.ErrInvalidType, problem)
	}

	var cfg sampleConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	initial := cfg.initial
	if initial == nil {
		initial = bqm.MinSample(m)
	} else if err := validateInitial(m, initial); err != nil {
		return nil, err
	}

	state, err := core.StateFromSample(initial, m)
	if err != nil {
		return nil, err
	}

	runOpts := []core.RunOption{core.WithRunHooks(s.hooks)}
	if s.logger != nil {
		runOpts = append(runOpts, core.WithLogger(s.logger))
	}

	out, err := core.Run(ctx, s.workflow, state, runOpts...).Result()
	if err != nil {
		return nil, err
	}
	ss := out.Samples()
	if ss == nil {
		return nil, fmt.Errorf("workflow %q produced no samples", s.workflow.Name())
	}
	return ss, nil
}

// validateInitial checks that the assignment covers exactly the model's
// variable set.
func validateInitial(m *bqm.Model, sample map[string]int) error {
	if len(sample) != m.NumVariables() {
		return fmt.Errorf("%w: initial sample assigns %d variables, model has %d",
			core.ErrInvalidValue, len(sample), m.NumVariables())
	}
	for _, v := range m.Variables() {
		if _, ok := sample[v]; !ok {
			return fmt.Errorf("%w: initial sample missing variable %q", core.ErrInvalidValue, v)
		}
	}
	return nil
}
