package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heredity/internal/pedigree"
)

func key(a *Assignment) string { return fmt.Sprint(a.Genes, a.Traits) }

func TestEnumeratorCounts(t *testing.T) {
	en, err := NewEnumerator(mustPedigree(t, family0), 0)
	require.NoError(t, err)

	assert.Equal(t, uint64(27), en.GeneSpace())
	assert.Equal(t, 2, en.TraitSubsets(), "only Harry's trait is free")
	assert.Equal(t, uint64(6), en.Rejected())
	assert.Equal(t, uint64(54), en.Candidates())
}

func TestEachVisitsEveryConsistentCandidateOnce(t *testing.T) {
	pd := mustPedigree(t, family0)
	en, err := NewEnumerator(pd, 0)
	require.NoError(t, err)

	seen := map[string]int{}
	require.NoError(t, en.Each(context.Background(), func(a *Assignment) error {
		assert.True(t, a.Traits[1], "James is known to express the trait")
		assert.False(t, a.Traits[2], "Lily is known not to")
		seen[key(a)]++
		return nil
	}))

	// Reference: every 3-way gene partition built the slow way, crossed with
	// Harry's two trait values.
	ref := map[string]int{}
	for one := 0; one < 8; one++ {
		for two := 0; two < 8; two++ {
			if one&two != 0 {
				continue
			}
			genes := make([]GeneCount, 3)
			for i := range genes {
				switch {
				case one&(1<<i) != 0:
					genes[i] = OneCopy
				case two&(1<<i) != 0:
					genes[i] = TwoCopies
				}
			}
			for _, harry := range []bool{false, true} {
				ref[fmt.Sprint(genes, []bool{harry, true, false})]++
			}
		}
	}

	assert.Len(t, seen, 54)
	assert.Equal(t, ref, seen)
	for k, n := range seen {
		assert.Equal(t, 1, n, "visited twice: %s", k)
	}
}

func TestWalkRangesPartitionTheSpace(t *testing.T) {
	en, err := NewEnumerator(mustPedigree(t, threeGenerations), 0)
	require.NoError(t, err)

	all := map[string]bool{}
	cuts := []uint64{0, 1, 40, 41, 200, en.GeneSpace()}
	for i := 0; i+1 < len(cuts); i++ {
		require.NoError(t, en.Walk(context.Background(), cuts[i], cuts[i+1], func(a *Assignment) error {
			assert.GreaterOrEqual(t, a.GeneIndex(), cuts[i])
			assert.Less(t, a.GeneIndex(), cuts[i+1])
			k := key(a)
			assert.False(t, all[k], "duplicate %s", k)
			all[k] = true
			return nil
		}))
	}
	assert.Equal(t, int(en.Candidates()), len(all))
}

func TestWalkEmptyAndClampedRanges(t *testing.T) {
	en, err := NewEnumerator(mustPedigree(t, family0), 0)
	require.NoError(t, err)

	n := 0
	count := func(*Assignment) error { n++; return nil }
	require.NoError(t, en.Walk(context.Background(), 5, 5, count))
	require.NoError(t, en.Walk(context.Background(), 30, 10, count))
	assert.Zero(t, n)

	require.NoError(t, en.Walk(context.Background(), 26, 1000, count))
	assert.Equal(t, 2, n)
}

func TestGeneIndexMatchesDigits(t *testing.T) {
	a := NewAssignment(3)
	a.setGeneIndex(0)
	for idx := uint64(0); idx < 27; idx++ {
		assert.Equal(t, idx, a.GeneIndex())
		v, mul := uint64(0), uint64(1)
		for _, g := range a.Genes {
			v += uint64(g) * mul
			mul *= 3
		}
		assert.Equal(t, idx, v)
		a.nextGenes()
	}
}

func TestEachStopsOnVisitorError(t *testing.T) {
	en, err := NewEnumerator(mustPedigree(t, family0), 0)
	require.NoError(t, err)

	boom := errors.New("boom")
	n := 0
	err = en.Each(context.Background(), func(*Assignment) error {
		n++
		if n == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, n)
}

func TestEachHonoursCancellation(t *testing.T) {
	en, err := NewEnumerator(mustPedigree(t, family0), 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = en.Each(ctx, func(*Assignment) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnumeratorLimit(t *testing.T) {
	people := make([]pedigree.Individual, 4)
	for i := range people {
		people[i].Name = fmt.Sprintf("p%d", i)
	}
	pd, err := pedigree.New(people)
	require.NoError(t, err)

	_, err = NewEnumerator(pd, 3)
	assert.ErrorIs(t, err, ErrPedigreeTooLarge)

	en, err := NewEnumerator(pd, 4)
	require.NoError(t, err)
	assert.Equal(t, 16, en.TraitSubsets())
	assert.Equal(t, uint64(81), en.GeneSpace())
}

func TestEnumeratorEmptyPedigree(t *testing.T) {
	pd, err := pedigree.New(nil)
	require.NoError(t, err)
	en, err := NewEnumerator(pd, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), en.Candidates())
}
