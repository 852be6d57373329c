// pkg/api/posterior_v1.go
package api

// GeneV1 is a gene-count distribution keyed by copy count.
type GeneV1 struct {
	Zero float64 `json:"0"`
	One  float64 `json:"1"`
	Two  float64 `json:"2"`
}

// TraitV1 is a trait distribution.
type TraitV1 struct {
	True  float64 `json:"true"`
	False float64 `json:"false"`
}

// PosteriorV1 is the stable JSON/JSONL schema for one individual.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type PosteriorV1 struct {
	Name  string  `json:"name"`
	Gene  GeneV1  `json:"gene"`
	Trait TraitV1 `json:"trait"`
}

// RunV1 wraps a whole run for the json output.
type RunV1 struct {
	RunID       string        `json:"run_id"`
	Source      string        `json:"source,omitempty"`
	Individuals int           `json:"individuals"`
	Scored      uint64        `json:"candidates_scored,omitempty"`
	Posteriors  []PosteriorV1 `json:"posteriors"`
}
