package core

import (
	"context"
	"fmt"

	"github.com/aretw0/graft/pkg/bqm"
	"github.com/aretw0/graft/pkg/ports"
)

// SamplerRunnable adapts an external solving capability to the runnable
// lifecycle. At each transition it reads a problem model from one named state
// field, invokes the wrapped sampler, and writes the resulting sample set to
// another named field, leaving everything else untouched.
type SamplerRunnable struct {
	Base
	sampler ports.Sampler
	input   string
	output  string
}

// WrapSampler wraps a solving capability as a runnable. The solver must
// satisfy ports.Sampler (ErrInvalidType otherwise) and fields must name
// exactly two non-empty state fields, input then output (ErrInvalidValue
// otherwise). Validation fails here, synchronously, never inside a result
// cell.
func WrapSampler(solver any, fields []string) (*SamplerRunnable, error) {
	sampler, ok := solver.(ports.Sampler)
	if !ok || sampler == nil {
		return nil, fmt.Errorf("%w: solver must implement ports.Sampler, got %T", ErrInvalidType, solver)
	}
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: fields must name exactly an input and an output, got %d", ErrInvalidValue, len(fields))
	}
	if fields[0] == "" || fields[1] == "" {
		return nil, fmt.Errorf("%w: field names must be non-empty", ErrInvalidValue)
	}
	return &SamplerRunnable{
		Base:    NewBase(fmt.Sprintf("SamplerRunnable(%s->%s)", fields[0], fields[1])),
		sampler: sampler,
		input:   fields[0],
		output:  fields[1],
	}, nil
}

// WrapProblemSampler wraps a sampler over the conventional problem fields:
// it reads "problem" and writes "samples".
func WrapProblemSampler(solver any) (*SamplerRunnable, error) {
	return WrapSampler(solver, []string{"problem", "samples"})
}

// WrapSubproblemSampler wraps a sampler over the decomposition fields: it
// reads "subproblem" and writes "subsamples".
func WrapSubproblemSampler(solver any) (*SamplerRunnable, error) {
	return WrapSampler(solver, []string{"subproblem", "subsamples"})
}

// Next implements Runnable.
func (r *SamplerRunnable) Next(ctx context.Context, s *State) (*State, error) {
	m, ok := s.Get(r.input).(*bqm.Model)
	if !ok {
		return nil, &RunnableError{
			Message: fmt.Sprintf("state field %q does not hold a problem model", r.input),
			State:   s,
		}
	}
	ss, err := r.sampler.Sample(ctx, m)
	if err != nil {
		return nil, &RunnableError{
			Message: fmt.Sprintf("sampler failed on field %q", r.input),
			State:   s,
			Err:     err,
		}
	}
	return s.Updated(Fields{r.output: ss}), nil
}
