package outfit

import "fmt"

// Case 标识最终展示结果落在哪一种预算场景
type Case int

const (
	CaseUnlimited Case = iota + 1
	CaseFullWithinBudget
	CasePartialWithinBudget
	CaseBudgetInfeasible
)

const (
	msgUnlimited = "Unlimited Budget: Displaying the best possible outfit based on style match."
	msgFull      = "Full Outfit Found: All requested items were successfully matched within your budget."
	msgPartial   = "Partial Outfit Recommendation: We found the best outfit of %d out of %d items under your budget (€%.2f). " +
		"The best possible full outfit (all categories) costs €%.2f."
	msgInfeasible = "Budget Constraint Issue: Your budget (€%.2f) is too low to purchase any feasible combination of items. " +
		"Suggestion: Displaying the best possible full outfit, which costs €%.2f."
)

// Result 最终对用户展示的搭配及其预算口径
type Result struct {
	Outfit    Selection
	Case      Case
	CostCents int64
	// RemainingCents 不限预算时为 nil, 超预算兜底场景下为负数
	RemainingCents *int64
	// AspirationalCents 仅部分覆盖场景下给出全量搭配的参考价
	AspirationalCents *int64
	Message           string
}

// Select 按预算场景在预算内最优与全量最优之间裁决出展示结果
func Select(m Matrix, budget *Budget, feasible, full Selection) (*Result, error) {
	required := len(m)

	if budget == nil {
		if err := presentable(full); err != nil {
			return nil, err
		}
		return &Result{
			Outfit:    full,
			Case:      CaseUnlimited,
			CostCents: full.CostCents,
			Message:   msgUnlimited,
		}, nil
	}

	switch picked := feasible.SelectedCount(); {
	case required > 0 && picked == required:
		if err := presentable(feasible); err != nil {
			return nil, err
		}
		remaining := budget.Cents - feasible.CostCents
		return &Result{
			Outfit:         feasible,
			Case:           CaseFullWithinBudget,
			CostCents:      feasible.CostCents,
			RemainingCents: &remaining,
			Message:        msgFull,
		}, nil

	case picked > 0:
		remaining := budget.Cents - feasible.CostCents
		aspirational := full.CostCents
		return &Result{
			Outfit:            feasible,
			Case:              CasePartialWithinBudget,
			CostCents:         feasible.CostCents,
			RemainingCents:    &remaining,
			AspirationalCents: &aspirational,
			Message: fmt.Sprintf(msgPartial,
				picked, required, CentsToEuros(budget.Cents), CentsToEuros(full.CostCents)),
		}, nil

	default:
		if full.SelectedCount() == 0 {
			return nil, fmt.Errorf("no fallback outfit across %d categories: %w", required, ErrNoCandidates)
		}
		if err := presentable(full); err != nil {
			return nil, err
		}
		// 预算不足时兜底展示全量搭配, 剩余预算刻意给出负值
		remaining := budget.Cents - full.CostCents
		return &Result{
			Outfit:         full,
			Case:           CaseBudgetInfeasible,
			CostCents:      full.CostCents,
			RemainingCents: &remaining,
			Message: fmt.Sprintf(msgInfeasible,
				CentsToEuros(budget.Cents), CentsToEuros(full.CostCents)),
		}, nil
	}
}

// presentable 兜底校验: 即便候选齐全, 也绝不把空搭配当成功结果返回
func presentable(sel Selection) error {
	if sel.SelectedCount() == 0 {
		return ErrEmptyAssembly
	}
	return nil
}
