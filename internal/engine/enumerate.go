package engine

import (
	"context"
	"errors"
	"fmt"

	"heredity/internal/pedigree"
)

// MaxSupported is the hard ceiling on pedigree size; the candidate space is
// 6^n so anything near it is already out of reach.
const MaxSupported = 20

// DefaultMaxIndividuals is the default soft limit enforced by NewEnumerator.
const DefaultMaxIndividuals = 12

// ErrPedigreeTooLarge is returned when a pedigree exceeds the configured limit.
var ErrPedigreeTooLarge = errors.New("pedigree too large for exact enumeration")

// how often Walk polls the context, in gene labelings
const ctxPollEvery = 1 << 10

// Enumerator produces every evidence-consistent candidate for a pedigree.
//
// Trait subsets are all 2^n bitmasks over pedigree positions, minus those that
// contradict known evidence. Gene labelings are all 3^n base-3 strings.
// Every consistent (labeling, subset) pair is visited exactly once.
type Enumerator struct {
	n          int
	geneSpace  uint64
	traitMasks []uint64
	rejected   uint64
}

// NewEnumerator precomputes the surviving trait subsets. limit <= 0 selects
// DefaultMaxIndividuals; limits above MaxSupported are clamped.
func NewEnumerator(pd *pedigree.Pedigree, limit int) (*Enumerator, error) {
	if limit <= 0 {
		limit = DefaultMaxIndividuals
	}
	if limit > MaxSupported {
		limit = MaxSupported
	}
	n := pd.Len()
	if n > limit {
		return nil, fmt.Errorf("%w: %d individuals, limit %d", ErrPedigreeTooLarge, n, limit)
	}

	e := &Enumerator{n: n, geneSpace: 1}
	for i := 0; i < n; i++ {
		e.geneSpace *= 3
	}

	// known: positions with evidence; want: their required bit values
	var known, want uint64
	for i := 0; i < n; i++ {
		obs := pd.At(i).Trait
		if !obs.Known() {
			continue
		}
		known |= 1 << uint(i)
		if obs.Value() {
			want |= 1 << uint(i)
		}
	}
	for mask := uint64(0); mask < 1<<uint(n); mask++ {
		if mask&known != want {
			e.rejected++
			continue
		}
		e.traitMasks = append(e.traitMasks, mask)
	}
	return e, nil
}

// Len is the number of individuals per assignment.
func (e *Enumerator) Len() int { return e.n }

// GeneSpace is the number of gene labelings, 3^n.
func (e *Enumerator) GeneSpace() uint64 { return e.geneSpace }

// TraitSubsets is the number of trait subsets that survived the evidence filter.
func (e *Enumerator) TraitSubsets() int { return len(e.traitMasks) }

// Rejected is the number of trait subsets dropped by the evidence filter.
func (e *Enumerator) Rejected() uint64 { return e.rejected }

// Candidates is the total number of assignments a full walk visits.
func (e *Enumerator) Candidates() uint64 { return e.geneSpace * uint64(len(e.traitMasks)) }

// Each visits every candidate.
func (e *Enumerator) Each(ctx context.Context, visit func(*Assignment) error) error {
	return e.Walk(ctx, 0, e.geneSpace, visit)
}

// Walk visits the candidates whose gene labeling index falls in [lo, hi),
// crossing each labeling with every surviving trait subset. Disjoint ranges
// visit disjoint candidates, so ranges can be walked concurrently.
func (e *Enumerator) Walk(ctx context.Context, lo, hi uint64, visit func(*Assignment) error) error {
	if hi > e.geneSpace {
		hi = e.geneSpace
	}
	if lo >= hi {
		return nil
	}
	a := NewAssignment(e.n)
	a.setGeneIndex(lo)
	for idx := lo; idx < hi; idx++ {
		if (idx-lo)%ctxPollEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for _, mask := range e.traitMasks {
			a.setTraits(mask)
			if err := visit(a); err != nil {
				return err
			}
		}
		a.nextGenes()
	}
	return nil
}
