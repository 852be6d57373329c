package probs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileTables mirrors the on-disk layout. Pointers distinguish "absent" from 0
// so a file may override only part of the defaults.
//
//	gene:     {0: 0.96, 1: 0.03, 2: 0.01}
//	trait:    {0: 0.01, 1: 0.56, 2: 0.65}
//	mutation: 0.01
type fileTables struct {
	Gene     map[int]float64 `yaml:"gene"`
	Trait    map[int]float64 `yaml:"trait"`
	Mutation *float64        `yaml:"mutation"`
}

// LoadYAML reads a tables file and overlays it on Default.
func LoadYAML(path string) (Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read tables: %w", err)
	}
	return ParseYAML(raw)
}

// ParseYAML decodes a tables document and overlays it on Default.
func ParseYAML(raw []byte) (Tables, error) {
	var ft fileTables
	if err := yaml.Unmarshal(raw, &ft); err != nil {
		return Tables{}, fmt.Errorf("%w: %v", ErrInvalidTables, err)
	}
	t := Default()
	for k, v := range ft.Gene {
		if k < 0 || k > 2 {
			return Tables{}, fmt.Errorf("%w: gene key %d not in 0..2", ErrInvalidTables, k)
		}
		t.Gene[k] = v
	}
	for k, v := range ft.Trait {
		if k < 0 || k > 2 {
			return Tables{}, fmt.Errorf("%w: trait key %d not in 0..2", ErrInvalidTables, k)
		}
		t.Trait[k] = v
	}
	if ft.Mutation != nil {
		t.Mutation = *ft.Mutation
	}
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}
