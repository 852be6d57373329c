package engine

import (
	"context"

	"heredity/internal/pedigree"
	"heredity/internal/probs"
)

// Scorer turns candidates into posterior mass. It caches the gene factor
// across consecutive candidates that share a gene labeling.
type Scorer struct {
	tables probs.Tables
	ped    *pedigree.Pedigree
	post   *Posterior

	lastGene   uint64
	geneFactor float64
	primed     bool

	// Scored counts visited candidates.
	Scored uint64
}

// NewScorer accumulates into a fresh Posterior for pd.
func NewScorer(t probs.Tables, pd *pedigree.Pedigree) *Scorer {
	return &Scorer{tables: t, ped: pd, post: NewPosterior(pd)}
}

// Visit scores one candidate; its signature fits Enumerator.Walk.
func (s *Scorer) Visit(a *Assignment) error {
	if !s.primed || a.GeneIndex() != s.lastGene {
		s.geneFactor = GeneFactor(s.tables, s.ped, a)
		s.lastGene = a.GeneIndex()
		s.primed = true
	}
	s.Scored++
	if s.geneFactor == 0 {
		return nil
	}
	s.post.Add(a, s.geneFactor*TraitFactor(s.tables, a))
	return nil
}

// Posterior returns the accumulated, not yet normalised, buckets.
func (s *Scorer) Posterior() *Posterior { return s.post }

// Infer enumerates every candidate for pd on the calling goroutine and
// returns the normalised posterior. limit is passed to NewEnumerator.
func Infer(ctx context.Context, t probs.Tables, pd *pedigree.Pedigree, limit int) (*Posterior, error) {
	en, err := NewEnumerator(pd, limit)
	if err != nil {
		return nil, err
	}
	sc := NewScorer(t, pd)
	if err := en.Each(ctx, sc.Visit); err != nil {
		return nil, err
	}
	post := sc.Posterior()
	if err := post.Normalize(); err != nil {
		return nil, err
	}
	return post, nil
}
