/*
Package core implements the workflow engine: the result cell (Future/Present),
the versioned pipeline state, and the runnable lifecycle with its sequential
composition into branches.

# Concept

A pipeline is a chain of runnables, each transforming a shared State and
handing it to the next. Running a runnable yields a result cell that behaves
identically whether the work already finished (inline execution) or is still
pending on a background goroutine. Failures raised inside a stage are captured
into the cell and travel down the chain until a stage opts into recovery via
its OnError hook.

# Key Entities

  - Future / Present / Deferred: The result cell in its resolved and pending forms.
  - State: The ordered, copy-on-write key-value context threaded through stages.
  - Runnable / Base: The Init/Next/OnError/Stop lifecycle of a pipeline stage.
  - Branch / Chain: Ordered sequential composition of runnables.
  - SamplerRunnable: The adapter wrapping an external solving capability.

# Usage

Concrete stages embed Base and supply Next:

	type Inc struct{ core.Base }

	func (r *Inc) Next(ctx context.Context, s *core.State) (*core.State, error) {
		x, _ := s.Get("x").(int)
		return s.Updated(core.Fields{"x": x + 1}), nil
	}

	fut := core.Run(ctx, core.Chain(&Inc{}, &Inc{}), core.NewState(core.Fields{"x": 1}))
	final, err := fut.Result()
*/
package core
