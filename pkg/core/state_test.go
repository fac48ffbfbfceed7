package core_test

import (
	"testing"

	"github.com/aretw0/graft/pkg/bqm"
	"github.com/aretw0/graft/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Construction(t *testing.T) {
	s := core.NewState()
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Get("problem"), "unknown fields read as nil, not an error")
	assert.Nil(t, s.Samples())

	s = core.NewState(core.Fields{"problem": map[string]any{"a": 1}})
	assert.Equal(t, map[string]any{"a": 1}, s.Get("problem"))

	s = core.NewState(core.Fields{"debug": map[string]any{"a": 1}})
	assert.Equal(t, map[string]any{"a": 1}, s.Get("debug"))
	assert.True(t, s.Has("debug"))
	assert.False(t, s.Has("emb"))
}

func TestState_UpdatedIdentity(t *testing.T) {
	s := core.NewState(core.Fields{"x": 1, "debug": map[string]any{"a": 1}})

	// updated() with no changes equals the receiver.
	assert.True(t, s.Updated().Equal(s))

	// and never aliases it.
	u := s.Updated(core.Fields{"x": 2})
	assert.Equal(t, 1, s.Get("x"), "Updated must not mutate the receiver")
	assert.Equal(t, 2, u.Get("x"))
}

func TestState_UpdatedReplace(t *testing.T) {
	a := core.NewState(core.Fields{"samples": []int{1, 0, 1}})
	b := a.Updated(core.Fields{"samples": []int{0, 1, 0}})

	assert.Equal(t, []int{0, 1, 0}, b.Get("samples"))
	assert.Equal(t, []int{1, 0, 1}, a.Get("samples"), "sequences replace wholesale")

	// Replacing an associative field with a scalar is wholesale as well.
	s := core.NewState(core.Fields{"emb": map[string]any{"a": 1}})
	assert.Equal(t, "raw", s.Updated(core.Fields{"emb": "raw"}).Get("emb"))
}

func TestState_UpdatedMerge(t *testing.T) {
	s2 := core.NewState(core.Fields{
		"emb":   map[string]any{"a": map[string]any{"b": 1}},
		"debug": map[string]any{"x": 1},
	})

	// Overlapping keys replace.
	assert.Equal(t, map[string]any{"x": 2},
		s2.Updated(core.Fields{"debug": map[string]any{"x": 2}}).Get("debug"))

	// New keys join the existing siblings.
	assert.Equal(t, map[string]any{"x": 1, "y": 2},
		s2.Updated(core.Fields{"debug": map[string]any{"y": 2}}).Get("debug"))

	// Merge recurses and preserves deep siblings.
	s3 := core.NewState(core.Fields{
		"debug": map[string]any{"x": map[string]any{"y": map[string]any{"z": []any{1}}}},
	})
	assert.Equal(t,
		map[string]any{"x": map[string]any{"y": map[string]any{"z": []any{2}}}},
		s3.Updated(core.Fields{"debug": map[string]any{"x": map[string]any{"y": map[string]any{"z": []any{2}}}}}).Get("debug"))
	assert.Equal(t,
		map[string]any{"x": map[string]any{"y": map[string]any{"z": []any{1}, "w": 2}}},
		s3.Updated(core.Fields{"debug": map[string]any{"x": map[string]any{"y": map[string]any{"w": 2}}}}).Get("debug"))
}

func TestState_UpdatedMergeNestedState(t *testing.T) {
	s := core.NewState(core.Fields{"sub": core.NewState(core.Fields{"a": 1})})

	// State-valued fields merge key-wise like maps: siblings survive.
	u := s.Updated(core.Fields{"sub": core.NewState(core.Fields{"b": 2})})
	sub, ok := u.Get("sub").(*core.State)
	require.True(t, ok, "merging into a nested state keeps it a state")
	assert.Equal(t, 1, sub.Get("a"))
	assert.Equal(t, 2, sub.Get("b"))

	// The receiver's nested state is untouched.
	orig := s.Get("sub").(*core.State)
	assert.Equal(t, 1, orig.Get("a"))
	assert.Nil(t, orig.Get("b"))

	// A map replacement merges into the nested state too.
	u = s.Updated(core.Fields{"sub": map[string]any{"a": 3, "c": 4}})
	sub, ok = u.Get("sub").(*core.State)
	require.True(t, ok)
	assert.Equal(t, 3, sub.Get("a"))
	assert.Equal(t, 4, sub.Get("c"))

	// And the other way around: a state replacement merges into a map field,
	// which stays a map.
	m := core.NewState(core.Fields{"sub": map[string]any{"a": 1}})
	got := m.Updated(core.Fields{"sub": core.NewState(core.Fields{"b": 2})}).Get("sub")
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, got)
}

func TestState_UpdatedMergeStateInsideMap(t *testing.T) {
	s := core.NewState(core.Fields{
		"emb": map[string]any{"inner": core.NewState(core.Fields{"a": 1})},
	})

	u := s.Updated(core.Fields{
		"emb": map[string]any{"inner": core.NewState(core.Fields{"b": 2})},
	})

	emb, ok := u.Get("emb").(map[string]any)
	require.True(t, ok)
	inner, ok := emb["inner"].(*core.State)
	require.True(t, ok, "nested states merge inside maps as well")
	assert.Equal(t, 1, inner.Get("a"))
	assert.Equal(t, 2, inner.Get("b"))
}

func TestState_UpdatedClear(t *testing.T) {
	s := core.NewState(core.Fields{
		"emb":   map[string]any{"a": 1},
		"debug": map[string]any{"x": 1},
	})

	// nil clears to absent; it is not merged into the sub-mapping.
	cleared := s.Updated(core.Fields{"emb": nil})
	assert.Nil(t, cleared.Get("emb"))
	assert.False(t, cleared.Has("emb"))

	cleared = s.Updated(core.Fields{"debug": nil})
	assert.False(t, cleared.Has("debug"))

	// The receiver keeps its fields.
	assert.True(t, s.Has("emb"))
}

func TestState_Copy(t *testing.T) {
	s1 := core.NewState(core.Fields{"a": map[string]any{"x": 1}})
	s2 := s1.Copy()

	assert.True(t, s1.Equal(s2))

	// In-place mutation of a nested container in the original must not show
	// through to the copy, and vice versa.
	s1.Get("a").(map[string]any)["x"] = 2

	assert.False(t, s1.Equal(s2))
	assert.Equal(t, 2, s1.Get("a").(map[string]any)["x"])
	assert.Equal(t, 1, s2.Get("a").(map[string]any)["x"])
}

func TestState_Equal(t *testing.T) {
	a := core.NewState(core.Fields{"x": 1, "y": map[string]any{"k": "v"}})
	b := core.NewState(core.Fields{"y": map[string]any{"k": "v"}, "x": 1})

	assert.True(t, a.Equal(b), "equality ignores field order")

	c := a.Updated(core.Fields{"x": 2})
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(core.NewState()))
}

func TestState_FromSample(t *testing.T) {
	m := bqm.NewBinary()
	m.AddVariable("0", 1)
	m.AddVariable("1", 2)

	s, err := core.StateFromSample(map[string]int{"0": 0, "1": 1}, m)
	require.NoError(t, err)

	first, ok := s.Samples().First()
	require.True(t, ok)
	assert.Equal(t, 2.0, first.Energy)
	assert.Same(t, m, s.Problem())

	s, err = core.StateFromSample(map[string]int{"0": 1, "1": 0}, m)
	require.NoError(t, err)
	first, _ = s.Samples().First()
	assert.Equal(t, 1.0, first.Energy)

	// Several assignments at once keep the best reachable via First.
	s, err = core.StateFromSamples([]map[string]int{
		{"0": 1, "1": 1},
		{"0": 0, "1": 0},
	}, m)
	require.NoError(t, err)
	first, _ = s.Samples().First()
	assert.Equal(t, 0.0, first.Energy)

	// Incomplete assignments fail fast.
	_, err = core.StateFromSample(map[string]int{"0": 0}, m)
	assert.Error(t, err)
}
