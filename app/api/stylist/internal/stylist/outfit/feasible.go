package outfit

import "sort"

// dp 状态: 某个总花费下能达到的最优质量以及对应的选择路径
type dpEntry struct {
	quality float64
	path    []int
}

const skipStep = -1

// OptimizeFeasible 在预算内求总质量最高的搭配, 允许跳过品类.
// 不限预算时退化为全量装配. 质量并列取花费更低者, 再并列取先枚举到的路径.
func OptimizeFeasible(m Matrix, budget *Budget) (Selection, error) {
	if budget == nil {
		return OptimizeFull(m)
	}
	if err := m.validate(); err != nil {
		return Selection{}, err
	}

	dp := map[int64]dpEntry{0: {quality: 0, path: nil}}
	for _, col := range m {
		next := make(map[int64]dpEntry, len(dp)*(len(col.Candidates)+1))
		// 按花费升序遍历父状态, 保证并列时留下的路径不受 map 随机序影响
		for _, cost := range sortedCosts(dp) {
			cur := dp[cost]

			// 跳过该品类
			if prev, ok := next[cost]; !ok || cur.quality > prev.quality {
				next[cost] = dpEntry{quality: cur.quality, path: appendStep(cur.path, skipStep)}
			}

			// 逐个尝试该品类的候选
			for idx, cand := range col.Candidates {
				newCost := cost + cand.PriceCents
				if newCost > budget.Cents {
					continue
				}
				newQuality := cur.quality + cand.Quality
				if prev, ok := next[newCost]; !ok || newQuality > prev.quality {
					next[newCost] = dpEntry{quality: newQuality, path: appendStep(cur.path, idx)}
				}
			}
		}
		dp = next
	}

	best := dp[0]
	for _, cost := range sortedCosts(dp) {
		if e := dp[cost]; e.quality > best.quality {
			best = e
		}
	}
	return m.selectionFromPath(best.path), nil
}

func sortedCosts(dp map[int64]dpEntry) []int64 {
	costs := make([]int64, 0, len(dp))
	for c := range dp {
		costs = append(costs, c)
	}
	sort.Slice(costs, func(i, j int) bool { return costs[i] < costs[j] })
	return costs
}

// appendStep 复制路径后追加一步, 避免不同状态共享底层数组
func appendStep(path []int, step int) []int {
	next := make([]int, len(path)+1)
	copy(next, path)
	next[len(path)] = step
	return next
}

func (m Matrix) selectionFromPath(path []int) Selection {
	sel := Selection{Picks: make([]Pick, len(m))}
	for i, col := range m {
		pick := Pick{Category: col.Request.Category}
		if i < len(path) && path[i] >= 0 {
			cand := col.Candidates[path[i]]
			pick.Candidate = &cand
			sel.CostCents += cand.PriceCents
			sel.Quality += cand.Quality
		}
		sel.Picks[i] = pick
	}
	return sel
}
