package ports

import (
	"context"

	"github.com/aretw0/graft/pkg/bqm"
)

// Sampler is the solving capability: given a problem model, produce a set of
// scored candidate solutions. Implementations configure their own search
// parameters (restarts, seeds, tenure) at construction time.
//
// Sample should honor ctx cancellation between externally-visible steps; the
// engine never preempts a sampler forcibly.
type Sampler interface {
	Sample(ctx context.Context, m *bqm.Model) (*bqm.SampleSet, error)
}

// SamplerFunc adapts a plain function to the Sampler interface.
type SamplerFunc func(ctx context.Context, m *bqm.Model) (*bqm.SampleSet, error)

// Sample implements Sampler.
func (f SamplerFunc) Sample(ctx context.Context, m *bqm.Model) (*bqm.SampleSet, error) {
	return f(ctx, m)
}
