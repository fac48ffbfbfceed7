/*
Package tabu implements a multi-start tabu search sampler for binary
quadratic models.

Each restart performs steepest-descent single-variable flips with a
short-term tabu memory. Recently flipped variables are forbidden for a
fixed tenure unless flipping one would beat the best energy seen so far.
The sampler is deterministic for a given seed.
*/
package tabu

import (
	"context"
	"math/rand/v2"

	"github.com/aretw0/graft/pkg/bqm"
	"github.com/aretw0/graft/pkg/ports"
)

const (
	defaultRestarts = 8
	defaultSweeps   = 100
)

// Sampler is a multi-start tabu search over single-variable flips. It
// implements ports.Sampler. The zero value is not usable; construct it
// with New.
type Sampler struct {
	restarts int
	tenure   int
	sweeps   int
	seed     uint64
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithRestarts sets the number of independent search restarts. Each
// restart contributes one record to the result.
func WithRestarts(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.restarts = n
		}
	}
}

// WithTenure sets the tabu tenure, the number of moves a flipped
// variable stays forbidden. Zero selects a tenure based on the model
// size at sample time.
func WithTenure(n int) Option {
	return func(s *Sampler) { s.tenure = n }
}

// WithMaxSweeps caps the number of flip moves per restart.
func WithMaxSweeps(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.sweeps = n
		}
	}
}

// WithSeed fixes the random source so runs are reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Sampler) { s.seed = seed }
}

// New creates a tabu sampler with the given options.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		restarts: defaultRestarts,
		sweeps:   defaultSweeps,
		seed:     1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Sampler = (*Sampler)(nil)

// Sample runs the search and returns one record per restart, best
// first. The context is checked between restarts, so cancellation takes
// effect at restart granularity.
func (s *Sampler) Sample(ctx context.Context, m *bqm.Model) (*bqm.SampleSet, error) {
	if m.NumVariables() == 0 {
		return bqm.FromSamples(m, map[string]int{})
	}

	tenure := s.tenure
	if tenure <= 0 {
		tenure = min(m.NumVariables()/4+1, 20)
	}

	rng := rand.New(rand.NewPCG(s.seed, 0))
	samples := make([]map[string]int, 0, s.restarts)
	for i := 0; i < s.restarts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := bqm.RandomSample(m, rng)
		if i == 0 {
			start = bqm.MinSample(m)
		}
		samples = append(samples, s.descend(m, start, tenure))
	}

	ss, err := bqm.FromSamples(m, samples...)
	if err != nil {
		return nil, err
	}
	return ss.Sorted(), nil
}

// descend runs one tabu descent from the given assignment and returns
// the best sample visited.
func (s *Sampler) descend(m *bqm.Model, sample map[string]int, tenure int) map[string]int {
	vars := m.Variables()
	energy, _ := m.Energy(sample)

	best := copySample(sample)
	bestEnergy := energy

	// expiry[v] is the move index at which v leaves the tabu list.
	expiry := make(map[string]int, len(vars))

	for move := 0; move < s.sweeps; move++ {
		chosen := ""
		chosenDelta := 0.0
		found := false

		for _, v := range vars {
			delta := m.EnergyDelta(sample, v)
			if expiry[v] > move && energy+delta >= bestEnergy {
				continue // tabu, and no aspiration
			}
			if !found || delta < chosenDelta {
				chosen, chosenDelta, found = v, delta, true
			}
		}
		if !found {
			break // every move is tabu
		}

		flip(m, sample, chosen)
		energy += chosenDelta
		expiry[chosen] = move + 1 + tenure

		if energy < bestEnergy {
			best = copySample(sample)
			bestEnergy = energy
		}
	}
	return best
}

func flip(m *bqm.Model, sample map[string]int, v string) {
	if m.Vartype() == bqm.Spin {
		sample[v] = -sample[v]
	} else {
		sample[v] = 1 - sample[v]
	}
}

func copySample(sample map[string]int) map[string]int {
	out := make(map[string]int, len(sample))
	for v, val := range sample {
		out[v] = val
	}
	return out
}
