package outfit

// OptimizeFull 无视预算, 每个品类都取质量最高的候选.
// 质量并列取价格更低者, 再并列取先枚举到的候选.
func OptimizeFull(m Matrix) (Selection, error) {
	if err := m.validate(); err != nil {
		return Selection{}, err
	}

	sel := Selection{Picks: make([]Pick, len(m))}
	for i, col := range m {
		best := 0
		for idx := 1; idx < len(col.Candidates); idx++ {
			c, b := col.Candidates[idx], col.Candidates[best]
			if c.Quality > b.Quality || (c.Quality == b.Quality && c.PriceCents < b.PriceCents) {
				best = idx
			}
		}
		cand := col.Candidates[best]
		sel.Picks[i] = Pick{Category: col.Request.Category, Candidate: &cand}
		sel.CostCents += cand.PriceCents
		sel.Quality += cand.Quality
	}
	return sel, nil
}

// Assemble 对同一矩阵分别求预算内最优与全量最优
func Assemble(m Matrix, budget *Budget) (feasible, full Selection, err error) {
	full, err = OptimizeFull(m)
	if err != nil {
		return Selection{}, Selection{}, err
	}
	feasible, err = OptimizeFeasible(m, budget)
	if err != nil {
		return Selection{}, Selection{}, err
	}
	return feasible, full, nil
}
