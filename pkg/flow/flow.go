package flow

import (
	"context"

	"github.com/aretw0/graft/pkg/core"
)

// Lambda wraps a plain function as a runnable, for one-off stages that do not
// deserve a named type.
type Lambda struct {
	core.Base
	fn func(ctx context.Context, s *core.State) (*core.State, error)
}

// NewLambda builds a function-backed runnable.
func NewLambda(name string, fn func(ctx context.Context, s *core.State) (*core.State, error)) *Lambda {
	return &Lambda{Base: core.NewBase(name), fn: fn}
}

// Next implements core.Runnable.
func (r *Lambda) Next(ctx context.Context, s *core.State) (*core.State, error) {
	return r.fn(ctx, s)
}

// Const applies a fixed patch to every state that passes through.
type Const struct {
	core.Base
	patch core.Fields
}

// NewConst builds a runnable that always applies the same update.
func NewConst(name string, patch core.Fields) *Const {
	return &Const{Base: core.NewBase(name), patch: patch}
}

// Next implements core.Runnable.
func (r *Const) Next(ctx context.Context, s *core.State) (*core.State, error) {
	return s.Updated(r.patch), nil
}

// IdentityDecomposer passes the whole problem through as the subproblem.
// The trivial decomposition: useful as a pipeline skeleton and in tests.
type IdentityDecomposer struct{ core.Base }

// NewIdentityDecomposer builds the trivial decomposer.
func NewIdentityDecomposer() *IdentityDecomposer {
	return &IdentityDecomposer{Base: core.NewBase("IdentityDecomposer")}
}

// Next implements core.Runnable.
func (r *IdentityDecomposer) Next(ctx context.Context, s *core.State) (*core.State, error) {
	if s.Problem() == nil {
		return nil, core.NewRunnableError("identity decomposer requires a problem field", s)
	}
	return s.Updated(core.Fields{"subproblem": s.Problem()}), nil
}

// IdentityComposer promotes the subproblem samples to the problem samples
// unchanged. The counterpart of IdentityDecomposer.
type IdentityComposer struct{ core.Base }

// NewIdentityComposer builds the trivial composer.
func NewIdentityComposer() *IdentityComposer {
	return &IdentityComposer{Base: core.NewBase("IdentityComposer")}
}

// Next implements core.Runnable.
func (r *IdentityComposer) Next(ctx context.Context, s *core.State) (*core.State, error) {
	if s.Subsamples() == nil {
		return nil, core.NewRunnableError("identity composer requires a subsamples field", s)
	}
	return s.Updated(core.Fields{"samples": s.Subsamples()}), nil
}
