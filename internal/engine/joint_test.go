package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heredity/internal/probs"
)

func TestInheritTable(t *testing.T) {
	tb := probs.Default()
	// mother, father -> P(0), P(1), P(2)
	cases := []struct {
		gm, gf GeneCount
		want   [3]float64
	}{
		{NoCopies, NoCopies, [3]float64{0.9801, 0.0198, 0.0001}},
		{NoCopies, OneCopy, [3]float64{0.4950, 0.5000, 0.0050}},
		{NoCopies, TwoCopies, [3]float64{0.0099, 0.9802, 0.0099}},
		{OneCopy, OneCopy, [3]float64{0.25, 0.5, 0.25}},
		{OneCopy, TwoCopies, [3]float64{0.005, 0.5, 0.495}},
		{TwoCopies, TwoCopies, [3]float64{0.0001, 0.0198, 0.9801}},
	}
	for _, c := range cases {
		sum := 0.0
		for _, g := range GeneCounts {
			got := Inherit(tb, g, c.gm, c.gf)
			assert.InDelta(t, c.want[g], got, 1e-12, "m=%v f=%v child=%v", c.gm, c.gf, g)
			assert.InDelta(t, Inherit(tb, g, c.gf, c.gm), got, 1e-15, "symmetric in parents")
			sum += got
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
}

func TestJointByHand(t *testing.T) {
	pd := mustPedigree(t, family0)
	a := NewAssignment(3)
	// Harry 1 copy, no trait; James 2 copies, trait; Lily 0 copies, no trait
	a.Genes = []GeneCount{OneCopy, TwoCopies, NoCopies}
	a.Traits = []bool{false, true, false}

	tb := probs.Default()
	want := 0.96 * 0.01 * 0.9802 * 0.44 * 0.65 * 0.99
	assert.InDelta(t, want, Joint(tb, pd, a), 1e-15)
	assert.InDelta(t, 0.0026643247488, Joint(tb, pd, a), 1e-13)
}

func TestJointIsGeneTimesTrait(t *testing.T) {
	pd := mustPedigree(t, threeGenerations)
	en, err := NewEnumerator(pd, 0)
	require.NoError(t, err)
	tb := probs.Default()

	total := 0.0
	require.NoError(t, en.Each(context.Background(), func(a *Assignment) error {
		j := Joint(tb, pd, a)
		assert.GreaterOrEqual(t, j, 0.0)
		assert.Equal(t, GeneFactor(tb, pd, a)*TraitFactor(tb, a), j)
		total += j
		return nil
	}))
	assert.Greater(t, total, 0.0)
	assert.Less(t, total, 1.0)
}

func TestJointSumsToOneWithoutEvidence(t *testing.T) {
	pd := mustPedigree(t, "name,mother,father,trait\nMum,,,\nDad,,,\nKid,Mum,Dad,\n")
	en, err := NewEnumerator(pd, 0)
	require.NoError(t, err)
	tb := probs.Default()

	total := 0.0
	require.NoError(t, en.Each(context.Background(), func(a *Assignment) error {
		total += Joint(tb, pd, a)
		return nil
	}))
	assert.InDelta(t, 1.0, total, 1e-12)
}
