package bqm

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Record is a single scored candidate: an assignment, its energy against the
// model it was scored on, and how many times the solver produced it.
type Record struct {
	Sample         map[string]int `json:"sample"`
	Energy         float64        `json:"energy"`
	NumOccurrences int            `json:"num_occurrences"`
}

// SampleSet is an immutable collection of scored candidate assignments plus
// the ordered variable labels and solver-reported metadata.
//
// Treat a SampleSet as read-only once built; accessors return copies where
// mutation would otherwise leak.
type SampleSet struct {
	variables []string
	records   []Record
	info      map[string]any
}

// Empty returns the canonical empty sample set.
func Empty() *SampleSet {
	return &SampleSet{}
}

// FromRecords builds a sample set directly from pre-scored records.
func FromRecords(variables []string, records []Record, info map[string]any) *SampleSet {
	ss := &SampleSet{
		variables: append([]string(nil), variables...),
		records:   append([]Record(nil), records...),
	}
	if len(info) > 0 {
		ss.info = make(map[string]any, len(info))
		for k, v := range info {
			ss.info[k] = v
		}
	}
	return ss
}

// FromSamples scores raw assignments against a model and collects them.
// Occurrence counts default to 1.
func FromSamples(m *Model, samples ...map[string]int) (*SampleSet, error) {
	records := make([]Record, 0, len(samples))
	for _, s := range samples {
		energy, err := m.Energy(s)
		if err != nil {
			return nil, err
		}
		assignment := make(map[string]int, len(s))
		for v, val := range s {
			assignment[v] = val
		}
		records = append(records, Record{Sample: assignment, Energy: energy, NumOccurrences: 1})
	}
	return FromRecords(m.Variables(), records, nil), nil
}

// Len returns the number of records.
func (ss *SampleSet) Len() int { return len(ss.records) }

// Variables returns the ordered variable labels. The slice is a copy.
func (ss *SampleSet) Variables() []string {
	return append([]string(nil), ss.variables...)
}

// Records returns the scored records. The slice is a copy; the assignments
// inside are shared and must not be mutated.
func (ss *SampleSet) Records() []Record {
	return append([]Record(nil), ss.records...)
}

// Info returns the solver-reported metadata (may be nil).
func (ss *SampleSet) Info() map[string]any { return ss.info }

// First returns the lowest-energy record. The second return is false for an
// empty set.
func (ss *SampleSet) First() (Record, bool) {
	if len(ss.records) == 0 {
		return Record{}, false
	}
	best := ss.records[0]
	for _, r := range ss.records[1:] {
		if r.Energy < best.Energy {
			best = r
		}
	}
	return best, true
}

// Sorted returns a copy of the set with records ordered by ascending energy.
func (ss *SampleSet) Sorted() *SampleSet {
	out := FromRecords(ss.variables, ss.records, ss.info)
	sort.SliceStable(out.records, func(i, j int) bool {
		return out.records[i].Energy < out.records[j].Energy
	})
	return out
}

// Equal reports structural equality: same variables, records and info.
func (ss *SampleSet) Equal(other *SampleSet) bool {
	if ss == nil || other == nil {
		return ss == other
	}
	if len(ss.variables) != len(other.variables) || len(ss.records) != len(other.records) {
		return false
	}
	for i, v := range ss.variables {
		if other.variables[i] != v {
			return false
		}
	}
	return reflect.DeepEqual(ss.records, other.records) &&
		reflect.DeepEqual(ss.info, other.info)
}

func (ss *SampleSet) String() string {
	if r, ok := ss.First(); ok {
		return fmt.Sprintf("SampleSet(%d records, best energy %v)", len(ss.records), r.Energy)
	}
	return "SampleSet(empty)"
}

// sampleSetDoc is the serialized wire form, used by the store adapters and
// the HTTP surface.
type sampleSetDoc struct {
	Variables []string       `json:"variables"`
	Records   []Record       `json:"records"`
	Info      map[string]any `json:"info,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (ss *SampleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(sampleSetDoc{
		Variables: ss.variables,
		Records:   ss.records,
		Info:      ss.info,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (ss *SampleSet) UnmarshalJSON(data []byte) error {
	var doc sampleSetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	ss.variables = doc.Variables
	ss.records = doc.Records
	ss.info = doc.Info
	return nil
}
