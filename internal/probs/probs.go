// internal/probs/probs.go
package probs

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTables is returned when a Tables value fails validation.
var ErrInvalidTables = errors.New("invalid probability tables")

// Tables holds the fixed model constants. It is a plain value: copy it freely,
// nothing in the engine mutates it.
type Tables struct {
	// Gene is the unconditional founder prior indexed by copy count.
	Gene [3]float64
	// Trait is P(trait expressed | copies) indexed by copy count.
	// P(not expressed) is the complement.
	Trait [3]float64
	// Mutation is the chance an allele flips during transmission.
	Mutation float64
}

// Default returns the standard tables.
func Default() Tables {
	return Tables{
		Gene:     [3]float64{0.96, 0.03, 0.01},
		Trait:    [3]float64{0.01, 0.56, 0.65},
		Mutation: 0.01,
	}
}

// TraitGiven returns P(trait == expressed | copies).
func (t Tables) TraitGiven(copies int, expressed bool) float64 {
	if expressed {
		return t.Trait[copies]
	}
	return 1 - t.Trait[copies]
}

// Pass returns the probability that a parent carrying copies variant alleles
// hands one to a child.
func (t Tables) Pass(copies int) float64 {
	switch copies {
	case 0:
		return t.Mutation
	case 1:
		return 0.5
	default:
		return 1 - t.Mutation
	}
}

// Validate checks every value is a probability and the founder prior sums to 1.
func (t Tables) Validate() error {
	check := func(name string, v float64) error {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s = %v is outside [0,1]", ErrInvalidTables, name, v)
		}
		return nil
	}
	sum := 0.0
	for i, v := range t.Gene {
		if err := check(fmt.Sprintf("gene[%d]", i), v); err != nil {
			return err
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("%w: gene prior sums to %v, want 1", ErrInvalidTables, sum)
	}
	for i, v := range t.Trait {
		if err := check(fmt.Sprintf("trait[%d]", i), v); err != nil {
			return err
		}
	}
	return check("mutation", t.Mutation)
}
