package bqm

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Doc is the serializable document form of a Model.
// It uses "mapstructure" tags so problem definitions arriving as generic maps
// (YAML frontmatter, JSON request bodies) decode through the same schema.
type Doc struct {
	Vartype   string             `json:"vartype" yaml:"vartype" mapstructure:"vartype"`
	Linear    map[string]float64 `json:"linear" yaml:"linear" mapstructure:"linear"`
	Quadratic []QuadraticTerm    `json:"quadratic" yaml:"quadratic" mapstructure:"quadratic"`
	Offset    float64            `json:"offset" yaml:"offset" mapstructure:"offset"`
}

// QuadraticTerm is one pairwise coupling in a Doc.
type QuadraticTerm struct {
	U    string  `json:"u" yaml:"u" mapstructure:"u"`
	V    string  `json:"v" yaml:"v" mapstructure:"v"`
	Bias float64 `json:"bias" yaml:"bias" mapstructure:"bias"`
}

// FromDoc builds a Model from its document form.
func FromDoc(doc Doc) (*Model, error) {
	vartype, err := ParseVartype(doc.Vartype)
	if err != nil {
		return nil, err
	}
	m, err := New(nil, nil, doc.Offset, vartype)
	if err != nil {
		return nil, err
	}
	for v, bias := range doc.Linear {
		m.AddVariable(v, bias)
	}
	for _, q := range doc.Quadratic {
		if q.U == "" || q.V == "" {
			return nil, fmt.Errorf("quadratic term is missing a variable label: %+v", q)
		}
		if err := m.AddInteraction(q.U, q.V, q.Bias); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromMap decodes a generic map (e.g. a parsed JSON body) through the Doc
// schema and builds a Model.
func FromMap(raw map[string]any) (*Model, error) {
	var doc Doc
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid problem document: %w", err)
	}
	return FromDoc(doc)
}

// LoadFile reads a YAML problem document from disk and builds a Model.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse problem file: %w", err)
	}
	return FromMap(raw)
}
