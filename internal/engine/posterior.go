package engine

import (
	"errors"
	"fmt"
	"math"

	"heredity/internal/pedigree"
)

// ErrZeroMass means a distribution had nothing to normalise: no candidate
// contributed probability to it.
var ErrZeroMass = errors.New("zero probability mass")

// ZeroMassError names the individual and distribution that could not be
// normalised.
type ZeroMassError struct {
	Name string
	Dist string // "gene" or "trait"
}

func (e *ZeroMassError) Error() string {
	return fmt.Sprintf("%s: %s distribution for %q", ErrZeroMass, e.Dist, e.Name)
}

func (e *ZeroMassError) Unwrap() error { return ErrZeroMass }

// Marginal is one individual's row: gene buckets indexed by GeneCount and
// trait buckets indexed false=0, true=1.
type Marginal struct {
	Name  string
	Gene  [3]float64
	Trait [2]float64
}

// GeneP returns the bucket for g.
func (m Marginal) GeneP(g GeneCount) float64 { return m.Gene[g] }

// TraitP returns the bucket for v.
func (m Marginal) TraitP(v bool) float64 {
	if v {
		return m.Trait[1]
	}
	return m.Trait[0]
}

// Posterior accumulates joint probabilities into per-individual buckets.
// It is not safe for concurrent use; give each worker its own and Merge.
type Posterior struct {
	rows       []Marginal
	normalized bool
}

// NewPosterior returns zeroed buckets for every individual in pd.
func NewPosterior(pd *pedigree.Pedigree) *Posterior {
	rows := make([]Marginal, pd.Len())
	for i := range rows {
		rows[i].Name = pd.At(i).Name
	}
	return &Posterior{rows: rows}
}

// Add credits p to each individual's assigned gene and trait buckets.
func (ps *Posterior) Add(a *Assignment, p float64) {
	for i := range ps.rows {
		ps.rows[i].Gene[a.Genes[i]] += p
		if a.Traits[i] {
			ps.rows[i].Trait[1] += p
		} else {
			ps.rows[i].Trait[0] += p
		}
	}
}

// Merge adds other's buckets into ps element-wise.
func (ps *Posterior) Merge(other *Posterior) error {
	if len(other.rows) != len(ps.rows) {
		return fmt.Errorf("merge posterior: %d rows into %d", len(other.rows), len(ps.rows))
	}
	if ps.normalized || other.normalized {
		return errors.New("merge posterior: already normalized")
	}
	for i := range ps.rows {
		for g := range ps.rows[i].Gene {
			ps.rows[i].Gene[g] += other.rows[i].Gene[g]
		}
		ps.rows[i].Trait[0] += other.rows[i].Trait[0]
		ps.rows[i].Trait[1] += other.rows[i].Trait[1]
	}
	return nil
}

// Normalize rescales every distribution to sum to 1. It fails with a
// *ZeroMassError instead of producing NaN, and may only run once.
func (ps *Posterior) Normalize() error {
	if ps.normalized {
		return errors.New("posterior already normalized")
	}
	for i := range ps.rows {
		r := &ps.rows[i]
		total := r.Gene[0] + r.Gene[1] + r.Gene[2]
		if !positive(total) {
			return &ZeroMassError{Name: r.Name, Dist: "gene"}
		}
		for g := range r.Gene {
			r.Gene[g] /= total
		}
		total = r.Trait[0] + r.Trait[1]
		if !positive(total) {
			return &ZeroMassError{Name: r.Name, Dist: "trait"}
		}
		r.Trait[0] /= total
		r.Trait[1] /= total
	}
	ps.normalized = true
	return nil
}

func positive(x float64) bool { return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x) }

// Normalized reports whether Normalize has succeeded.
func (ps *Posterior) Normalized() bool { return ps.normalized }

// Marginals returns a copy of the rows in pedigree order.
func (ps *Posterior) Marginals() []Marginal {
	out := make([]Marginal, len(ps.rows))
	copy(out, ps.rows)
	return out
}
