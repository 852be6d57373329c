package engine

import "fmt"

// GeneCount is the number of variant-allele copies an individual carries.
type GeneCount uint8

const (
	NoCopies GeneCount = iota
	OneCopy
	TwoCopies
)

// GeneCounts lists every value in ascending order.
var GeneCounts = [...]GeneCount{NoCopies, OneCopy, TwoCopies}

func (g GeneCount) String() string {
	if g > TwoCopies {
		return fmt.Sprintf("GeneCount(%d)", uint8(g))
	}
	return fmt.Sprint(uint8(g))
}
