package outfit

import (
	"fmt"
	"sort"
)

// LockedQuality 锁定单品作为伪候选时的固定质量, 保证装配时必然保留
const LockedQuality = 1.0

// RefinementContext 增量调整时携带的上一轮结果与本轮要求变更的品类
type RefinementContext struct {
	// Previous 上一轮各品类最终选中的单品, 键为规范品类
	Previous map[string]Candidate
	// Changed 用户本轮明确要求重新检索的品类
	Changed map[string]struct{}
}

// IsChanged 判断品类是否在本轮要求变更
func (rc *RefinementContext) IsChanged(category string) bool {
	if rc == nil {
		return false
	}
	_, ok := rc.Changed[category]
	return ok
}

// carriedCategories 上一轮持有但本轮计划未提及且未要求变更的品类, 按品类名排序保证确定性
func (rc *RefinementContext) carriedCategories(planned map[string]struct{}) []string {
	if rc == nil {
		return nil
	}
	carried := make([]string, 0, len(rc.Previous))
	for cat := range rc.Previous {
		if _, ok := planned[cat]; ok {
			continue
		}
		if rc.IsChanged(cat) {
			continue
		}
		carried = append(carried, cat)
	}
	sort.Strings(carried)
	return carried
}

// BuildMatrix 由本轮计划与调整上下文构建候选矩阵:
// 计划内品类按原顺序排列, 上一轮遗留品类追加在后;
// 未变更且有上轮选择的品类锁定为单一伪候选, 其余留待检索填充.
func BuildMatrix(plan []CategoryRequest, rc *RefinementContext) Matrix {
	planned := make(map[string]struct{}, len(plan))
	cols := make(Matrix, 0, len(plan))
	for _, req := range plan {
		planned[req.Category] = struct{}{}
		cols = append(cols, Column{Request: req})
	}

	for _, cat := range rc.carriedCategories(planned) {
		cols = append(cols, Column{Request: CategoryRequest{Category: cat}})
	}

	for i := range cols {
		req := &cols[i].Request
		if rc.IsChanged(req.Category) {
			continue
		}
		prev, ok := rc.previous(req.Category)
		if !ok {
			continue
		}
		prev.Quality = LockedQuality
		req.Locked = true
		cols[i].Candidates = []Candidate{prev}
	}
	return cols
}

func (rc *RefinementContext) previous(category string) (Candidate, bool) {
	if rc == nil {
		return Candidate{}, false
	}
	cand, ok := rc.Previous[category]
	return cand, ok
}

// MergeRetrieved 将批量检索结果按原位置回填到未锁定的列.
// 结果列表数量不符或任一品类为空都是致命错误.
func MergeRetrieved(m Matrix, retrieved [][]Candidate) (Matrix, error) {
	unlocked := m.Unlocked()
	if len(retrieved) != len(unlocked) {
		return nil, fmt.Errorf("retrieval returned %d lists for %d unlocked categories: %w",
			len(retrieved), len(unlocked), ErrNoCandidates)
	}

	out := make(Matrix, len(m))
	copy(out, m)
	for j, i := range unlocked {
		if len(retrieved[j]) == 0 {
			return nil, &NoCandidatesError{Category: m[i].Request.Category}
		}
		out[i].Candidates = retrieved[j]
	}
	return out, nil
}
