package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func assembleAndSelect(t *testing.T, m Matrix, budget *Budget) *Result {
	t.Helper()
	feasible, full, err := Assemble(m, budget)
	require.NoError(t, err)
	res, err := Select(m, budget, feasible, full)
	require.NoError(t, err)
	return res
}

func TestSelectUnlimitedBudget(t *testing.T) {
	res := assembleAndSelect(t, testMatrix(), nil)

	require.Equal(t, CaseUnlimited, res.Case)
	require.Equal(t, []string{"A", "B", "C"}, selectedIDs(res.Outfit))
	require.Equal(t, int64(10000), res.CostCents)
	require.Nil(t, res.RemainingCents)
	require.Nil(t, res.AspirationalCents)
	require.Equal(t,
		"Unlimited Budget: Displaying the best possible outfit based on style match.",
		res.Message)
}

func TestSelectFullOutfitWithinBudget(t *testing.T) {
	res := assembleAndSelect(t, testMatrix(), NewBudget(500))

	require.Equal(t, CaseFullWithinBudget, res.Case)
	require.Equal(t, []string{"A", "B", "C"}, selectedIDs(res.Outfit))
	require.Equal(t, int64(10000), res.CostCents)
	require.NotNil(t, res.RemainingCents)
	require.Equal(t, int64(40000), *res.RemainingCents)
	require.Nil(t, res.AspirationalCents)
	require.Equal(t,
		"Full Outfit Found: All requested items were successfully matched within your budget.",
		res.Message)
}

func TestSelectPartialOutfitWithinBudget(t *testing.T) {
	res := assembleAndSelect(t, testMatrix(), NewBudget(90))

	require.Equal(t, CasePartialWithinBudget, res.Case)
	require.Equal(t, []string{"A", "B"}, selectedIDs(res.Outfit))
	require.Equal(t, int64(5000), res.CostCents)
	require.NotNil(t, res.RemainingCents)
	require.Equal(t, int64(4000), *res.RemainingCents)
	require.NotNil(t, res.AspirationalCents)
	require.Equal(t, int64(10000), *res.AspirationalCents)
	require.Equal(t,
		"Partial Outfit Recommendation: We found the best outfit of 2 out of 3 items "+
			"under your budget (€90.00). The best possible full outfit (all categories) costs €100.00.",
		res.Message)
}

func TestSelectBudgetInfeasibleFallsBackToFull(t *testing.T) {
	res := assembleAndSelect(t, testMatrix(), NewBudget(10))

	require.Equal(t, CaseBudgetInfeasible, res.Case)
	require.Equal(t, []string{"A", "B", "C"}, selectedIDs(res.Outfit))
	require.Equal(t, int64(10000), res.CostCents)
	require.NotNil(t, res.RemainingCents)
	require.Equal(t, int64(-9000), *res.RemainingCents)
	require.Nil(t, res.AspirationalCents)
	require.Equal(t,
		"Budget Constraint Issue: Your budget (€10.00) is too low to purchase any feasible "+
			"combination of items. Suggestion: Displaying the best possible full outfit, which costs €100.00.",
		res.Message)
}

func TestSelectZeroCoverageWithoutFallbackFails(t *testing.T) {
	_, err := Select(Matrix{}, NewBudget(50), Selection{}, Selection{})
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestSelectGuardsEmptyPresentedSelection(t *testing.T) {
	m := testMatrix()
	hollow := Selection{Picks: make([]Pick, len(m))}

	_, err := Select(m, nil, hollow, hollow)
	require.ErrorIs(t, err, ErrEmptyAssembly)

	full := Selection{Picks: []Pick{{Category: CategoryTop, Candidate: &m[0].Candidates[0]}}}
	res, err := Select(m, NewBudget(500), hollow, full)
	require.NoError(t, err)
	require.Equal(t, CaseBudgetInfeasible, res.Case)
}

func TestSelectCaseOrderUnlimitedWinsOverCoverage(t *testing.T) {
	m := testMatrix()
	feasible, full, err := Assemble(m, nil)
	require.NoError(t, err)

	res, err := Select(m, nil, feasible, full)
	require.NoError(t, err)
	require.Equal(t, CaseUnlimited, res.Case)
	require.Nil(t, res.RemainingCents)
}
