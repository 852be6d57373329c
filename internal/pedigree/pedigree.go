// Package pedigree holds the family model the engine scores: individuals,
// parent links and the trait evidence known for each of them.
//
// A Pedigree is validated once at construction and is read-only afterwards.
package pedigree

import (
	"errors"
	"fmt"
)

// ErrInvalid wraps every structural problem found while building a Pedigree.
var ErrInvalid = errors.New("invalid pedigree")

// Observation is the tri-state trait evidence for one individual.
type Observation int8

const (
	Unknown Observation = iota
	Expressed
	NotExpressed
)

// Known reports whether the trait value was observed.
func (o Observation) Known() bool { return o != Unknown }

// Value is the observed trait value; meaningless when !Known().
func (o Observation) Value() bool { return o == Expressed }

func (o Observation) String() string {
	switch o {
	case Expressed:
		return "expressed"
	case NotExpressed:
		return "not-expressed"
	default:
		return "unknown"
	}
}

// Individual is one row of the pedigree. Mother and Father are both empty for
// a founder and both set otherwise.
type Individual struct {
	Name   string
	Mother string
	Father string
	Trait  Observation
}

// Founder reports whether the individual has no recorded parents.
func (p Individual) Founder() bool { return p.Mother == "" && p.Father == "" }

// Pedigree is an ordered, validated set of individuals.
type Pedigree struct {
	people  []Individual
	index   map[string]int
	parents [][2]int // -1,-1 for founders
}

// New validates people and builds a Pedigree. Input order is preserved.
func New(people []Individual) (*Pedigree, error) {
	pd := &Pedigree{
		people:  make([]Individual, len(people)),
		index:   make(map[string]int, len(people)),
		parents: make([][2]int, len(people)),
	}
	copy(pd.people, people)

	for i, p := range pd.people {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: individual %d has no name", ErrInvalid, i+1)
		}
		if _, dup := pd.index[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate individual %q", ErrInvalid, p.Name)
		}
		pd.index[p.Name] = i
	}

	for i, p := range pd.people {
		pd.parents[i] = [2]int{-1, -1}
		if p.Founder() {
			continue
		}
		if p.Mother == "" || p.Father == "" {
			return nil, fmt.Errorf("%w: %q must list both parents or neither", ErrInvalid, p.Name)
		}
		if p.Mother == p.Father {
			return nil, fmt.Errorf("%w: %q lists %q as both parents", ErrInvalid, p.Name, p.Mother)
		}
		for k, parent := range [2]string{p.Mother, p.Father} {
			if parent == p.Name {
				return nil, fmt.Errorf("%w: %q references itself as a parent", ErrInvalid, p.Name)
			}
			j, ok := pd.index[parent]
			if !ok {
				return nil, fmt.Errorf("%w: %q references missing parent %q", ErrInvalid, p.Name, parent)
			}
			pd.parents[i][k] = j
		}
	}

	if err := pd.checkAcyclic(); err != nil {
		return nil, err
	}
	return pd, nil
}

// checkAcyclic walks parent links depth-first; a grey node seen twice is a cycle.
func (pd *Pedigree) checkAcyclic() error {
	const (
		white = iota
		grey
		black
	)
	color := make([]int, len(pd.people))
	var visit func(i int) error
	visit = func(i int) error {
		switch color[i] {
		case grey:
			return fmt.Errorf("%w: %q is its own ancestor", ErrInvalid, pd.people[i].Name)
		case black:
			return nil
		}
		color[i] = grey
		for _, j := range pd.parents[i] {
			if j < 0 {
				continue
			}
			if err := visit(j); err != nil {
				return err
			}
		}
		color[i] = black
		return nil
	}
	for i := range pd.people {
		if err := visit(i); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of individuals.
func (pd *Pedigree) Len() int { return len(pd.people) }

// At returns the i-th individual in load order.
func (pd *Pedigree) At(i int) Individual { return pd.people[i] }

// Index returns the position of name.
func (pd *Pedigree) Index(name string) (int, bool) {
	i, ok := pd.index[name]
	return i, ok
}

// Parents returns the mother and father positions of individual i; ok is false
// for founders.
func (pd *Pedigree) Parents(i int) (mother, father int, ok bool) {
	p := pd.parents[i]
	return p[0], p[1], p[0] >= 0
}

// Names returns the individual names in load order.
func (pd *Pedigree) Names() []string {
	out := make([]string, len(pd.people))
	for i, p := range pd.people {
		out[i] = p.Name
	}
	return out
}

// Founders counts individuals without parents.
func (pd *Pedigree) Founders() int {
	n := 0
	for _, p := range pd.people {
		if p.Founder() {
			n++
		}
	}
	return n
}

// Evidence counts individuals with a known trait value.
func (pd *Pedigree) Evidence() int {
	n := 0
	for _, p := range pd.people {
		if p.Trait.Known() {
			n++
		}
	}
	return n
}
