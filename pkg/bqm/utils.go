package bqm

import (
	"fmt"
	"math/rand/v2"
)

// MinSample assigns every variable its smallest value (-1 for spin, 0 for
// binary). Useful as a deterministic pipeline seed.
func MinSample(m *Model) map[string]int {
	return uniformSample(m, true)
}

// MaxSample assigns every variable its largest value (+1 for spin, 1 for
// binary).
func MaxSample(m *Model) map[string]int {
	return uniformSample(m, false)
}

func uniformSample(m *Model, low bool) map[string]int {
	val := 1
	if low {
		if m.Vartype() == Spin {
			val = -1
		} else {
			val = 0
		}
	}
	sample := make(map[string]int, m.NumVariables())
	for _, v := range m.Variables() {
		sample[v] = val
	}
	return sample
}

// RandomSample assigns every variable a uniformly random value drawn from rng.
func RandomSample(m *Model, rng *rand.Rand) map[string]int {
	sample := make(map[string]int, m.NumVariables())
	for _, v := range m.Variables() {
		if m.Vartype() == Spin {
			sample[v] = 2*rng.IntN(2) - 1
		} else {
			sample[v] = rng.IntN(2)
		}
	}
	return sample
}

// SampleAsMap normalizes a positional assignment (slice indexed like the
// model's variable order) into a labeled map. A map passed through is copied.
func SampleAsMap(m *Model, sample any) (map[string]int, error) {
	switch s := sample.(type) {
	case map[string]int:
		out := make(map[string]int, len(s))
		for k, v := range s {
			out[k] = v
		}
		return out, nil
	case []int:
		vars := m.Variables()
		if len(s) != len(vars) {
			return nil, fmt.Errorf("positional sample has %d values, model has %d variables", len(s), len(vars))
		}
		out := make(map[string]int, len(vars))
		for i, v := range vars {
			out[v] = s[i]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported sample form %T", sample)
	}
}
