package graft_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/pkg/bqm"
	"github.com/aretw0/graft/pkg/core"
	"github.com/aretw0/graft/pkg/flow"
	"github.com/aretw0/graft/pkg/samplers/tabu"
)

func frustratedTriangle(t *testing.T) *bqm.Model {
	t.Helper()
	m := bqm.NewSpin()
	require.NoError(t, m.AddInteraction("a", "b", 1))
	require.NoError(t, m.AddInteraction("b", "c", 1))
	require.NoError(t, m.AddInteraction("c", "a", -1))
	return m
}

func TestNewSampler_RejectsNil(t *testing.T) {
	_, err := graft.NewSampler(nil)
	assert.ErrorIs(t, err, core.ErrInvalidType)
}

func TestNewSampler_RejectsArbitraryValue(t *testing.T) {
	_, err := graft.NewSampler("not a workflow")
	assert.ErrorIs(t, err, core.ErrInvalidType)
}

func TestNewSampler_AcceptsRunnable(t *testing.T) {
	step, err := core.WrapProblemSampler(tabu.New())
	require.NoError(t, err)

	s, err := graft.NewSampler(step)
	require.NoError(t, err)
	assert.Same(t, step, s.Runnable())
}

func TestNewSampler_WrapsBareSampler(t *testing.T) {
	s, err := graft.NewSampler(tabu.New())
	require.NoError(t, err)
	assert.Contains(t, s.Runnable().Name(), "problem")
}

func TestSample_RejectsNonModelProblem(t *testing.T) {
	s, err := graft.NewSampler(tabu.New())
	require.NoError(t, err)

	_, err = s.Sample(context.Background(), "not a model")
	assert.ErrorIs(t, err, core.ErrInvalidType)

	_, err = s.Sample(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrInvalidType)
}

func TestSample_ValidatesInitialSample(t *testing.T) {
	s, err := graft.NewSampler(tabu.New())
	require.NoError(t, err)
	m := frustratedTriangle(t)

	_, err = s.Sample(context.Background(), m,
		graft.WithInitialSample(map[string]int{"a": 1}))
	assert.ErrorIs(t, err, core.ErrInvalidValue)

	_, err = s.Sample(context.Background(), m,
		graft.WithInitialSample(map[string]int{"a": 1, "b": 1, "z": 1}))
	assert.ErrorIs(t, err, core.ErrInvalidValue)
}

func TestSample_FrustratedTriangle(t *testing.T) {
	s, err := graft.NewSampler(tabu.New(tabu.WithSeed(11)))
	require.NoError(t, err)
	m := frustratedTriangle(t)

	for name, initial := range map[string]map[string]int{
		"default":      nil,
		"all aligned":  {"a": 1, "b": 1, "c": 1},
		"all opposite": {"a": -1, "b": 1, "c": -1},
	} {
		t.Run(name, func(t *testing.T) {
			var opts []graft.SampleOption
			if initial != nil {
				opts = append(opts, graft.WithInitialSample(initial))
			}

			ss, err := s.Sample(context.Background(), m, opts...)
			require.NoError(t, err)

			best, ok := ss.First()
			require.True(t, ok)
			assert.Equal(t, -3.0, best.Energy)
		})
	}
}

func TestSample_DecomposeSolveCompose(t *testing.T) {
	solve, err := core.WrapSubproblemSampler(tabu.New(tabu.WithSeed(5)))
	require.NoError(t, err)

	workflow := core.Chain(flow.NewIdentityDecomposer(), solve, flow.NewIdentityComposer())

	s, err := graft.NewSampler(workflow)
	require.NoError(t, err)

	ss, err := s.Sample(context.Background(), frustratedTriangle(t))
	require.NoError(t, err)

	best, ok := ss.First()
	require.True(t, ok)
	assert.Equal(t, -3.0, best.Energy)
}

func TestSample_WorkflowErrorSurfaces(t *testing.T) {
	failing := flow.NewLambda("Failing", func(_ context.Context, s *core.State) (*core.State, error) {
		return nil, core.NewRunnableError("no progress possible", s)
	})

	s, err := graft.NewSampler(failing)
	require.NoError(t, err)

	_, err = s.Sample(context.Background(), frustratedTriangle(t))
	require.Error(t, err)

	var rerr *core.RunnableError
	assert.ErrorAs(t, err, &rerr)
}
