package core

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/mohae/deepcopy"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/aretw0/graft/pkg/bqm"
)

// Fields is a partial state: field names mapped to replacement values.
// A nil value is the explicit "no value" sentinel and clears the field.
type Fields map[string]any

// State is the versioned key-value context threaded through a pipeline.
// Field insertion order is preserved, reads of unknown fields return nil
// ("absent") by contract, and all derived states are produced by copy-on-write
// merge: Updated never mutates its receiver.
//
// Stages are expected to call Updated or Copy instead of mutating nested
// containers in place; the engine does not enforce this with locking.
type State struct {
	fields *orderedmap.OrderedMap[string, any]
}

// NewState builds a state from zero or more partial field sets, applied in
// order. Within one Fields map, keys are applied in sorted order so the
// resulting field order is deterministic.
func NewState(fields ...Fields) *State {
	s := &State{fields: orderedmap.New[string, any]()}
	for _, f := range fields {
		s.apply(f)
	}
	return s
}

// StateFromSample builds an initial pipeline state for a problem: the sample
// is scored against the model and stored as a single-record sample set.
func StateFromSample(sample map[string]int, m *bqm.Model) (*State, error) {
	ss, err := bqm.FromSamples(m, sample)
	if err != nil {
		return nil, err
	}
	return NewState(Fields{"problem": m, "samples": ss}), nil
}

// StateFromSamples is StateFromSample for several raw assignments at once.
func StateFromSamples(samples []map[string]int, m *bqm.Model) (*State, error) {
	ss, err := bqm.FromSamples(m, samples...)
	if err != nil {
		return nil, err
	}
	return NewState(Fields{"problem": m, "samples": ss}), nil
}

// Get returns the value of a field, or nil when the field is absent.
// Permissive reads are deliberate: pipeline stages probe for optional fields
// without error handling.
func (s *State) Get(key string) any {
	v, _ := s.fields.Get(key)
	return v
}

// Has reports whether the field is present.
func (s *State) Has(key string) bool {
	_, ok := s.fields.Get(key)
	return ok
}

// Len returns the number of fields.
func (s *State) Len() int { return s.fields.Len() }

// Keys returns the field names in insertion order.
func (s *State) Keys() []string {
	out := make([]string, 0, s.fields.Len())
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Problem is the typed accessor for the conventional "problem" field.
// Returns nil when absent or differently typed.
func (s *State) Problem() *bqm.Model {
	m, _ := s.Get("problem").(*bqm.Model)
	return m
}

// Samples is the typed accessor for the conventional "samples" field.
func (s *State) Samples() *bqm.SampleSet {
	ss, _ := s.Get("samples").(*bqm.SampleSet)
	return ss
}

// Subproblem is the typed accessor for the conventional "subproblem" field.
func (s *State) Subproblem() *bqm.Model {
	m, _ := s.Get("subproblem").(*bqm.Model)
	return m
}

// Subsamples is the typed accessor for the conventional "subsamples" field.
func (s *State) Subsamples() *bqm.SampleSet {
	ss, _ := s.Get("subsamples").(*bqm.SampleSet)
	return ss
}

// Updated returns a new state equal to the receiver except for the fields in
// changes. When both the current and the replacement value of a field are
// associative containers (a plain map or a nested State), the result is
// their recursive key-wise union (new
// keys added, overlapping keys replaced, sibling keys preserved); any other
// type is replaced wholesale. A nil replacement clears the field to absent,
// overriding the merge rule. Updated() with no arguments equals the receiver.
func (s *State) Updated(changes ...Fields) *State {
	out := &State{fields: orderedmap.New[string, any]()}
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		out.fields.Set(pair.Key, pair.Value)
	}
	for _, f := range changes {
		out.apply(f)
	}
	return out
}

// apply merges one partial field set into s in place. Only reachable on
// freshly-built states, preserving the immutability of published ones.
func (s *State) apply(f Fields) {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := f[k]
		if v == nil {
			s.fields.Delete(k)
			continue
		}
		if old, ok := s.fields.Get(k); ok {
			if merged, ok := mergeValue(old, v); ok {
				s.fields.Set(k, merged)
				continue
			}
		}
		s.fields.Set(k, v)
	}
}

// mergeValue merges two associative values key-wise, reporting false when
// either side is not associative. The result keeps the current value's form:
// merging into a *State yields a *State, merging into a map yields a map.
func mergeValue(old, repl any) (any, bool) {
	if oldState, ok := old.(*State); ok {
		replFields, ok := assocFields(repl)
		if !ok {
			return nil, false
		}
		return oldState.Updated(Fields(replFields)), true
	}
	if oldMap, ok := asAssoc(old); ok {
		if replMap, ok := assocFields(repl); ok {
			return mergeAssoc(oldMap, replMap), true
		}
	}
	return nil, false
}

// asAssoc normalizes the plain associative container forms a field can hold.
func asAssoc(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Fields:
		return m, true
	default:
		return nil, false
	}
}

// assocFields is asAssoc extended with a map view of *State values.
func assocFields(v any) (map[string]any, bool) {
	if st, ok := v.(*State); ok {
		out := make(map[string]any, st.Len())
		for pair := st.fields.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = pair.Value
		}
		return out, true
	}
	return asAssoc(v)
}

// mergeAssoc returns the recursive key-wise union of old and repl, leaving
// both inputs untouched.
func mergeAssoc(old, repl map[string]any) map[string]any {
	out := make(map[string]any, len(old)+len(repl))
	for k, v := range old {
		out[k] = v
	}
	for k, v := range repl {
		if prev, ok := out[k]; ok {
			if merged, ok := mergeValue(prev, v); ok {
				out[k] = merged
				continue
			}
		}
		out[k] = v
	}
	return out
}

// Copy produces an independent state: in-place mutation of nested containers
// inside the copy never shows through to the original, and vice versa.
// Container values (maps, slices, nested states) are copied deeply; other
// values (models, sample sets, external objects) are shared, as they are
// immutable by pipeline convention.
func (s *State) Copy() *State {
	out := &State{fields: orderedmap.New[string, any]()}
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		out.fields.Set(pair.Key, copyValue(pair.Value))
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case *State:
		return val.Copy()
	case Fields:
		return deepcopy.Copy(map[string]any(val))
	case nil:
		return nil
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return deepcopy.Copy(v)
	default:
		return v
	}
}

// Equal reports structural equality over all fields, ignoring field order.
func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.fields.Len() != other.fields.Len() {
		return false
	}
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		ov, ok := other.fields.Get(pair.Key)
		if !ok {
			return false
		}
		if !valueEqual(pair.Value, ov) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	if as, ok := a.(*State); ok {
		bs, ok := b.(*State)
		return ok && as.Equal(bs)
	}
	if am, ok := asAssoc(a); ok {
		if bm, ok := asAssoc(b); ok {
			return reflect.DeepEqual(map[string]any(am), map[string]any(bm))
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func (s *State) String() string {
	var b strings.Builder
	b.WriteString("State(")
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		if pair != s.fields.Oldest() {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", pair.Key, pair.Value)
	}
	b.WriteString(")")
	return b.String()
}
