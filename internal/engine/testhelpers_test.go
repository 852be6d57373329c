package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"heredity/internal/pedigree"
)

func mustPedigree(t *testing.T, csv string) *pedigree.Pedigree {
	t.Helper()
	pd, err := pedigree.ReadCSV(strings.NewReader(csv), t.Name())
	require.NoError(t, err)
	return pd
}

const (
	family0 = `name,mother,father,trait
Harry,Lily,James,
James,,,1
Lily,,,0
`
	affectedChild = `name,mother,father,trait
Mum,,,
Dad,,,
Kid,Mum,Dad,1
`
	threeGenerations = `name,mother,father,trait
Gran,,,1
Gramps,,,
Mum,Gran,Gramps,
Dad,,,0
Kid,Mum,Dad,1
`
)

// want is {gene0, gene1, gene2, traitTrue}
type want struct {
	gene  [3]float64
	trait float64
}

func byName(ms []Marginal) map[string]Marginal {
	out := make(map[string]Marginal, len(ms))
	for _, m := range ms {
		out[m.Name] = m
	}
	return out
}
