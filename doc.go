/*
Package graft is an asynchronous workflow engine for iterative optimization,
built around composable runnables that transform a shared problem state.

It separates the solving workflow (Runnables, composed into Branches) from the
problem representation (binary quadratic models) and from solving capabilities
(Samplers). The engine manages state flow, deferred execution, and error
propagation, while samplers plug in as interchangeable components. This
Hexagonal Architecture allows graft to be embedded in any interface: CLI, HTTP
server, or a larger optimization service.

# Concept

A workflow is a pipeline of runnables. Each runnable receives an immutable
State, produces an updated copy, and hands it to the next component. Running a
workflow yields a Future that resolves to the final state, so callers decide
whether to block on the result or continue working.

# Key Features

  - Composable Pipelines: Chain runnables into branches with sequential semantics.
  - Deferred Execution: Runs resolve through result cells, inline or on goroutines.
  - Immutable State: Updates build new versions, recursively merging nested fields.
  - Pluggable Solvers: Any Sampler slots into a workflow via a thin adapter.

# Usage

Wrap a workflow (or a bare sampler) with NewSampler and hand it a problem.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/graft"
		"github.com/aretw0/graft/pkg/bqm"
		"github.com/aretw0/graft/pkg/samplers/tabu"
	)

	func main() {
		// A frustrated spin triangle: no assignment satisfies all couplings.
		m := bqm.NewSpin()
		m.AddInteraction("a", "b", 1)
		m.AddInteraction("b", "c", 1)
		m.AddInteraction("c", "a", -1)

		sampler, err := graft.NewSampler(tabu.New())
		if err != nil {
			log.Fatal(err)
		}

		ss, err := sampler.Sample(context.Background(), m)
		if err != nil {
			log.Fatal(err)
		}

		if best, ok := ss.First(); ok {
			fmt.Printf("best energy: %v at %v\n", best.Energy, best.Sample)
		}
	}
*/
package graft
