package bqm

import (
	"fmt"
)

// Vartype identifies the domain of the model's variables.
type Vartype string

const (
	// Spin variables take values in {-1, +1}.
	Spin Vartype = "SPIN"
	// Binary variables take values in {0, 1}.
	Binary Vartype = "BINARY"
)

// ParseVartype converts a document string into a Vartype.
func ParseVartype(s string) (Vartype, error) {
	switch Vartype(s) {
	case Spin, Binary:
		return Vartype(s), nil
	default:
		return "", fmt.Errorf("unknown vartype %q (want SPIN or BINARY)", s)
	}
}

// Edge is a canonical undirected variable pair. Build it with NewEdge so that
// (u, v) and (v, u) key the same quadratic bias.
type Edge [2]string

// NewEdge returns the canonical edge for the unordered pair {u, v}.
func NewEdge(u, v string) Edge {
	if v < u {
		u, v = v, u
	}
	return Edge{u, v}
}

// Model is a binary quadratic model: an energy function over spin or binary
// variables with linear and pairwise quadratic terms plus a constant offset.
//
// E(s) = offset + sum_i linear[i]*s_i + sum_{(u,v)} quadratic[u,v]*s_u*s_v
//
// A Model is treated as immutable once built; pipeline stages share it by
// pointer without copying.
type Model struct {
	vartype   Vartype
	linear    map[string]float64
	quadratic map[Edge]float64
	offset    float64
	order     []string
}

// New builds a model from linear and quadratic biases. Variables appear in the
// returned model in the order they are first seen: linear map iteration is not
// ordered in Go, so callers that care about variable order should add linear
// terms via a Doc or use NewSpin/NewBinary with explicit edges.
func New(linear map[string]float64, quadratic map[Edge]float64, offset float64, vartype Vartype) (*Model, error) {
	if vartype != Spin && vartype != Binary {
		return nil, fmt.Errorf("unknown vartype %q (want SPIN or BINARY)", vartype)
	}
	m := &Model{
		vartype:   vartype,
		linear:    make(map[string]float64),
		quadratic: make(map[Edge]float64),
		offset:    offset,
	}
	for v, bias := range linear {
		m.AddVariable(v, bias)
	}
	for e, bias := range quadratic {
		if err := m.AddInteraction(e[0], e[1], bias); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewSpin returns an empty spin model.
func NewSpin() *Model {
	m, _ := New(nil, nil, 0, Spin)
	return m
}

// NewBinary returns an empty binary model.
func NewBinary() *Model {
	m, _ := New(nil, nil, 0, Binary)
	return m
}

// AddVariable adds bias to the linear term of v, registering the variable if
// it is new.
func (m *Model) AddVariable(v string, bias float64) {
	if _, ok := m.linear[v]; !ok {
		m.order = append(m.order, v)
	}
	m.linear[v] += bias
}

// AddInteraction adds bias to the quadratic term of the pair {u, v},
// registering either variable if new. Self-loops are rejected.
func (m *Model) AddInteraction(u, v string, bias float64) error {
	if u == v {
		return fmt.Errorf("self-interaction on variable %q", u)
	}
	if _, ok := m.linear[u]; !ok {
		m.AddVariable(u, 0)
	}
	if _, ok := m.linear[v]; !ok {
		m.AddVariable(v, 0)
	}
	m.quadratic[NewEdge(u, v)] += bias
	return nil
}

// SetOffset replaces the constant energy offset.
func (m *Model) SetOffset(offset float64) { m.offset = offset }

// Vartype reports the variable domain of the model.
func (m *Model) Vartype() Vartype { return m.vartype }

// Offset returns the constant energy offset.
func (m *Model) Offset() float64 { return m.offset }

// NumVariables returns the number of variables in the model.
func (m *Model) NumVariables() int { return len(m.order) }

// Variables returns the variable labels in insertion order. The returned
// slice is a copy.
func (m *Model) Variables() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Linear returns the linear bias of v (zero for unknown variables).
func (m *Model) Linear(v string) float64 { return m.linear[v] }

// Quadratic returns the quadratic bias of the pair {u, v} (zero if absent).
func (m *Model) Quadratic(u, v string) float64 { return m.quadratic[NewEdge(u, v)] }

// Edges returns the interaction pairs present in the model.
func (m *Model) Edges() []Edge {
	out := make([]Edge, 0, len(m.quadratic))
	for e := range m.quadratic {
		out = append(out, e)
	}
	return out
}

// Has reports whether v is a variable of the model.
func (m *Model) Has(v string) bool {
	_, ok := m.linear[v]
	return ok
}

// Energy scores a candidate assignment against the model. Every model
// variable must be assigned; extra keys in sample are ignored.
func (m *Model) Energy(sample map[string]int) (float64, error) {
	e := m.offset
	for v, bias := range m.linear {
		val, ok := sample[v]
		if !ok {
			return 0, fmt.Errorf("sample does not assign variable %q", v)
		}
		e += bias * float64(val)
	}
	for edge, bias := range m.quadratic {
		e += bias * float64(sample[edge[0]]) * float64(sample[edge[1]])
	}
	return e, nil
}

// EnergyDelta returns the energy change from flipping variable v in sample.
// Flipping means negation for spin models and 0<->1 toggling for binary ones.
// The sample itself is not modified.
func (m *Model) EnergyDelta(sample map[string]int, v string) float64 {
	old := float64(sample[v])
	var next float64
	if m.vartype == Spin {
		next = -old
	} else {
		next = 1 - old
	}
	diff := next - old

	delta := m.linear[v] * diff
	for edge, bias := range m.quadratic {
		switch v {
		case edge[0]:
			delta += bias * diff * float64(sample[edge[1]])
		case edge[1]:
			delta += bias * diff * float64(sample[edge[0]])
		}
	}
	return delta
}

func (m *Model) String() string {
	return fmt.Sprintf("Model(%s, %d variables, %d interactions)",
		m.vartype, len(m.order), len(m.quadratic))
}
