package flow_test

import (
	"context"
	"testing"

	"github.com/aretw0/graft/pkg/adapters/memory"
	"github.com/aretw0/graft/pkg/bqm"
	"github.com/aretw0/graft/pkg/core"
	"github.com/aretw0/graft/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredState(t *testing.T, m *bqm.Model, sample map[string]int) *core.State {
	t.Helper()
	s, err := core.StateFromSample(sample, m)
	require.NoError(t, err)
	return s
}

func TestCheckpoint_StoresSamples(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	m := pathModel(t)

	cp := flow.NewCheckpoint(store, "path")

	s := scoredState(t, m, map[string]int{"a": 1, "b": -1})
	_, err := core.Run(ctx, cp, s).Result()
	require.NoError(t, err)

	stored, err := store.Get(ctx, "path")
	require.NoError(t, err)
	first, ok := stored.First()
	require.True(t, ok)
	assert.Equal(t, -1.0, first.Energy)
}

func TestCheckpoint_SeedsEmptyState(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	m := pathModel(t)

	seed, err := bqm.FromSamples(m, map[string]int{"a": -1, "b": 1})
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "path", seed))

	cp := flow.NewCheckpoint(store, "path")

	s, err := core.Run(ctx, cp, core.NewState(core.Fields{"problem": m})).Result()
	require.NoError(t, err)
	require.NotNil(t, s.Samples())
	first, _ := s.Samples().First()
	assert.Equal(t, -1.0, first.Energy)
}

func TestCheckpoint_EmptyStoreAndState(t *testing.T) {
	ctx := context.Background()
	cp := flow.NewCheckpoint(memory.NewStore(), "nothing")

	in := core.NewState()
	s, err := core.Run(ctx, cp, in).Result()
	require.NoError(t, err)
	assert.True(t, s.Equal(in), "missing key is not a failure")
}

func TestCheckpoint_KeepsBetterStored(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	m := pathModel(t)

	// Store already holds the ground state.
	best, err := bqm.FromSamples(m, map[string]int{"a": 1, "b": -1})
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "path", best))

	cp := flow.NewCheckpoint(store, "path")

	// Incoming state carries a worse sample; the better stored set wins both
	// in the store and in the outgoing state.
	s := scoredState(t, m, map[string]int{"a": 1, "b": 1})
	out, err := core.Run(ctx, cp, s).Result()
	require.NoError(t, err)

	first, _ := out.Samples().First()
	assert.Equal(t, -1.0, first.Energy)

	stored, err := store.Get(ctx, "path")
	require.NoError(t, err)
	first, _ = stored.First()
	assert.Equal(t, -1.0, first.Energy)
}
