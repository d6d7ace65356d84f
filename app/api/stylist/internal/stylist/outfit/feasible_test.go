package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testCandidate(id string, euros, quality float64) Candidate {
	return Candidate{
		ID:         id,
		Title:      "item " + id,
		PriceCents: EurosToCents(euros),
		Quality:    quality,
	}
}

// 三个品类的基准矩阵: top A €20/0.9, bottom B €30/0.8, shoes C €50/0.6
func testMatrix() Matrix {
	return Matrix{
		{
			Request:    CategoryRequest{Category: CategoryTop, Description: "white linen shirt"},
			Candidates: []Candidate{testCandidate("A", 20, 0.9)},
		},
		{
			Request:    CategoryRequest{Category: CategoryBottom, Description: "beige chinos"},
			Candidates: []Candidate{testCandidate("B", 30, 0.8)},
		},
		{
			Request:    CategoryRequest{Category: CategoryShoes, Description: "leather loafers"},
			Candidates: []Candidate{testCandidate("C", 50, 0.6)},
		},
	}
}

func selectedIDs(sel Selection) []string {
	ids := make([]string, 0, len(sel.Picks))
	for _, item := range sel.Items() {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestOptimizeFeasiblePartialUnderBudget(t *testing.T) {
	sel, err := OptimizeFeasible(testMatrix(), NewBudget(90))
	require.NoError(t, err)

	require.Equal(t, []string{"A", "B"}, selectedIDs(sel))
	require.Equal(t, int64(5000), sel.CostCents)
	require.InDelta(t, 1.7, sel.Quality, 1e-9)
	require.Nil(t, sel.Picks[2].Candidate)
}

func TestOptimizeFeasibleNilBudgetDelegatesToFull(t *testing.T) {
	m := testMatrix()

	feasible, err := OptimizeFeasible(m, nil)
	require.NoError(t, err)
	full, err := OptimizeFull(m)
	require.NoError(t, err)

	require.True(t, feasible.SameItems(full))
	require.Equal(t, full.CostCents, feasible.CostCents)
}

func TestOptimizeFeasibleNothingAffordable(t *testing.T) {
	sel, err := OptimizeFeasible(testMatrix(), NewBudget(10))
	require.NoError(t, err)

	require.Zero(t, sel.SelectedCount())
	require.Zero(t, sel.CostCents)
	require.Zero(t, sel.Quality)
	require.Len(t, sel.Picks, 3)
}

func TestOptimizeFeasibleExactBudgetIsAffordable(t *testing.T) {
	sel, err := OptimizeFeasible(testMatrix(), NewBudget(50))
	require.NoError(t, err)

	require.Equal(t, []string{"A", "B"}, selectedIDs(sel))
	require.Equal(t, int64(5000), sel.CostCents)
}

func TestOptimizeFeasibleSkipBeatsCheapFiller(t *testing.T) {
	m := Matrix{
		{
			Request:    CategoryRequest{Category: CategoryOuterwear},
			Candidates: []Candidate{testCandidate("coat", 80, 0.9)},
		},
		{
			Request:    CategoryRequest{Category: CategoryAccessories},
			Candidates: []Candidate{testCandidate("scarf", 20, 0.1)},
		},
	}

	// 两件合计超出预算, 放弃低质量配饰才能拿到大衣
	sel, err := OptimizeFeasible(m, NewBudget(90))
	require.NoError(t, err)

	require.Equal(t, []string{"coat"}, selectedIDs(sel))
	require.Nil(t, sel.Picks[1].Candidate)
	require.InDelta(t, 0.9, sel.Quality, 1e-9)
}

func TestOptimizeFeasibleTiePrefersLowerCost(t *testing.T) {
	m := Matrix{
		{
			Request: CategoryRequest{Category: CategoryTop},
			Candidates: []Candidate{
				testCandidate("pricey", 30, 0.5),
				testCandidate("cheap", 20, 0.5),
			},
		},
	}

	sel, err := OptimizeFeasible(m, NewBudget(100))
	require.NoError(t, err)

	require.Equal(t, []string{"cheap"}, selectedIDs(sel))
	require.Equal(t, int64(2000), sel.CostCents)
}

func TestOptimizeFeasibleTiePrefersFirstEnumerated(t *testing.T) {
	m := Matrix{
		{
			Request: CategoryRequest{Category: CategoryTop},
			Candidates: []Candidate{
				testCandidate("first", 20, 0.5),
				testCandidate("second", 20, 0.5),
			},
		},
	}

	sel, err := OptimizeFeasible(m, NewBudget(100))
	require.NoError(t, err)
	require.Equal(t, []string{"first"}, selectedIDs(sel))
}

func TestOptimizeFeasibleDeterministicAcrossRuns(t *testing.T) {
	m := Matrix{
		{
			Request: CategoryRequest{Category: CategoryTop},
			Candidates: []Candidate{
				testCandidate("t1", 20, 0.5),
				testCandidate("t2", 20, 0.5),
				testCandidate("t3", 10, 0.3),
			},
		},
		{
			Request: CategoryRequest{Category: CategoryBottom},
			Candidates: []Candidate{
				testCandidate("b1", 30, 0.4),
				testCandidate("b2", 20, 0.4),
				testCandidate("b3", 20, 0.4),
			},
		},
		{
			Request: CategoryRequest{Category: CategoryShoes},
			Candidates: []Candidate{
				testCandidate("s1", 40, 0.6),
				testCandidate("s2", 40, 0.6),
			},
		},
	}

	first, err := OptimizeFeasible(m, NewBudget(80))
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := OptimizeFeasible(m, NewBudget(80))
		require.NoError(t, err)
		require.Equal(t, selectedIDs(first), selectedIDs(again))
		require.Equal(t, first.CostCents, again.CostCents)
	}
}

func TestOptimizeFeasibleEmptyCategoryIsFatal(t *testing.T) {
	m := testMatrix()
	m[1].Candidates = nil

	_, err := OptimizeFeasible(m, NewBudget(90))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNoCandidates)

	var nce *NoCandidatesError
	require.ErrorAs(t, err, &nce)
	require.Equal(t, CategoryBottom, nce.Category)
}

func TestOptimizeFeasibleEmptyMatrixIsFatal(t *testing.T) {
	_, err := OptimizeFeasible(Matrix{}, NewBudget(90))
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestOptimizeFeasibleDoesNotMutateMatrix(t *testing.T) {
	m := testMatrix()
	_, err := OptimizeFeasible(m, NewBudget(90))
	require.NoError(t, err)

	require.Equal(t, "A", m[0].Candidates[0].ID)
	require.Equal(t, int64(2000), m[0].Candidates[0].PriceCents)
	require.InDelta(t, 0.9, m[0].Candidates[0].Quality, 1e-9)
	require.False(t, m[0].Request.Locked)
}

func TestOptimizeFeasibleAllNegativeQualityPrefersEmpty(t *testing.T) {
	m := Matrix{
		{
			Request:    CategoryRequest{Category: CategoryTop},
			Candidates: []Candidate{testCandidate("bad", 20, -0.4)},
		},
	}

	sel, err := OptimizeFeasible(m, NewBudget(100))
	require.NoError(t, err)
	require.Zero(t, sel.SelectedCount())
}
