package engine

import (
	"heredity/internal/pedigree"
	"heredity/internal/probs"
)

// Joint returns the probability of exactly this assignment: every gene count
// and every trait value at once. It is GeneFactor * TraitFactor.
func Joint(t probs.Tables, pd *pedigree.Pedigree, a *Assignment) float64 {
	return GeneFactor(t, pd, a) * TraitFactor(t, a)
}

// GeneFactor is the probability of the gene labeling alone: the founder prior
// for each founder times P(count | parents' counts) for everyone else.
func GeneFactor(t probs.Tables, pd *pedigree.Pedigree, a *Assignment) float64 {
	p := 1.0
	for i, g := range a.Genes {
		m, f, ok := pd.Parents(i)
		if !ok {
			p *= t.Gene[g]
			continue
		}
		p *= Inherit(t, g, a.Genes[m], a.Genes[f])
	}
	return p
}

// TraitFactor is the probability of the trait values given the gene labeling.
func TraitFactor(t probs.Tables, a *Assignment) float64 {
	p := 1.0
	for i, g := range a.Genes {
		p *= t.TraitGiven(int(g), a.Traits[i])
	}
	return p
}

// Inherit returns P(child has g copies | mother has gm, father has gf).
// Each parent transmits independently; only the branch for g is computed.
func Inherit(t probs.Tables, g, gm, gf GeneCount) float64 {
	pm, pf := t.Pass(int(gm)), t.Pass(int(gf))
	switch g {
	case TwoCopies:
		return pm * pf
	case OneCopy:
		return pm*(1-pf) + pf*(1-pm)
	default:
		return (1 - pm) * (1 - pf)
	}
}
