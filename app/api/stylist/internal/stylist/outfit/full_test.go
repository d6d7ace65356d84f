package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimizeFullPicksBestPerCategory(t *testing.T) {
	m := testMatrix()
	m[0].Candidates = append(m[0].Candidates, testCandidate("A2", 15, 0.4))

	sel, err := OptimizeFull(m)
	require.NoError(t, err)

	require.Equal(t, []string{"A", "B", "C"}, selectedIDs(sel))
	require.Equal(t, int64(10000), sel.CostCents)
	require.InDelta(t, 2.3, sel.Quality, 1e-9)
	require.Equal(t, len(m), sel.SelectedCount())
}

func TestOptimizeFullIgnoresBudgetEntirely(t *testing.T) {
	m := Matrix{
		{
			Request: CategoryRequest{Category: CategoryOuterwear},
			Candidates: []Candidate{
				testCandidate("affordable", 40, 0.2),
				testCandidate("couture", 2500, 0.95),
			},
		},
	}

	sel, err := OptimizeFull(m)
	require.NoError(t, err)
	require.Equal(t, []string{"couture"}, selectedIDs(sel))
}

func TestOptimizeFullTiePrefersCheaper(t *testing.T) {
	m := Matrix{
		{
			Request: CategoryRequest{Category: CategoryShoes},
			Candidates: []Candidate{
				testCandidate("pricey", 60, 0.7),
				testCandidate("cheap", 45, 0.7),
			},
		},
	}

	sel, err := OptimizeFull(m)
	require.NoError(t, err)
	require.Equal(t, []string{"cheap"}, selectedIDs(sel))
}

func TestOptimizeFullTiePrefersFirstEnumerated(t *testing.T) {
	m := Matrix{
		{
			Request: CategoryRequest{Category: CategoryShoes},
			Candidates: []Candidate{
				testCandidate("first", 45, 0.7),
				testCandidate("second", 45, 0.7),
			},
		},
	}

	sel, err := OptimizeFull(m)
	require.NoError(t, err)
	require.Equal(t, []string{"first"}, selectedIDs(sel))
}

func TestOptimizeFullEmptyCategoryIsFatal(t *testing.T) {
	m := testMatrix()
	m[2].Candidates = []Candidate{}

	_, err := OptimizeFull(m)
	require.ErrorIs(t, err, ErrNoCandidates)

	var nce *NoCandidatesError
	require.ErrorAs(t, err, &nce)
	require.Equal(t, CategoryShoes, nce.Category)
}

func TestAssembleReturnsBothSelections(t *testing.T) {
	feasible, full, err := Assemble(testMatrix(), NewBudget(90))
	require.NoError(t, err)

	require.Equal(t, []string{"A", "B"}, selectedIDs(feasible))
	require.Equal(t, []string{"A", "B", "C"}, selectedIDs(full))
	require.Equal(t, int64(5000), feasible.CostCents)
	require.Equal(t, int64(10000), full.CostCents)
}

func TestAssembleLavishBudgetMatchesFull(t *testing.T) {
	feasible, full, err := Assemble(testMatrix(), NewBudget(500))
	require.NoError(t, err)

	require.True(t, feasible.SameItems(full))
	require.Equal(t, full.CostCents, feasible.CostCents)
}
