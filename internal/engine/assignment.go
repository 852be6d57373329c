package engine

// Assignment is one candidate: a gene count and a trait value for every
// individual, indexed by pedigree position. The enumerator reuses one
// Assignment per walk, so visitors must not retain it.
type Assignment struct {
	Genes  []GeneCount
	Traits []bool

	geneIndex uint64
}

// NewAssignment returns an all-zero assignment for n individuals.
func NewAssignment(n int) *Assignment {
	return &Assignment{Genes: make([]GeneCount, n), Traits: make([]bool, n)}
}

// GeneIndex identifies the gene labeling: Genes read as a little-endian
// base-3 number. Consecutive candidates sharing an index differ only in traits.
func (a *Assignment) GeneIndex() uint64 { return a.geneIndex }

// setGeneIndex decodes idx into Genes.
func (a *Assignment) setGeneIndex(idx uint64) {
	a.geneIndex = idx
	for i := range a.Genes {
		a.Genes[i] = GeneCount(idx % 3)
		idx /= 3
	}
}

// nextGenes advances Genes like an odometer; false once it wraps.
func (a *Assignment) nextGenes() bool {
	a.geneIndex++
	for i := range a.Genes {
		if a.Genes[i] < TwoCopies {
			a.Genes[i]++
			return true
		}
		a.Genes[i] = NoCopies
	}
	return false
}

func (a *Assignment) setTraits(mask uint64) {
	for i := range a.Traits {
		a.Traits[i] = mask&(1<<uint(i)) != 0
	}
}
