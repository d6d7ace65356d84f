package outfit

import "math"

// Candidate 表示某个品类下的一件候选单品
type Candidate struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	ImageURL   string  `json:"image_link"`
	Brand      string  `json:"brand"`
	Material   string  `json:"material"`
	PriceCents int64   `json:"price_in_cents"`
	Quality    float64 `json:"similarity"`
}

// Constraints 检索时对候选单品的硬性过滤条件
type Constraints struct {
	Color    string `json:"color,omitempty"`
	Material string `json:"material,omitempty"`
	Brand    string `json:"brand,omitempty"`
}

// CategoryRequest 单个品类的检索需求
type CategoryRequest struct {
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Constraints Constraints `json:"constraints"`
	// Locked marks a carried-over category whose item must not change.
	Locked bool `json:"locked,omitempty"`
}

// Column 一个品类及其候选列表, 顺序即枚举顺序
type Column struct {
	Request    CategoryRequest
	Candidates []Candidate
}

// Matrix 各品类候选列表的集合, 与规划顺序一致
type Matrix []Column

// Unlocked 返回仍需检索候选的列下标
func (m Matrix) Unlocked() []int {
	idxs := make([]int, 0, len(m))
	for i, col := range m {
		if !col.Request.Locked {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// Categories 返回矩阵中各列的品类名
func (m Matrix) Categories() []string {
	cats := make([]string, len(m))
	for i, col := range m {
		cats[i] = col.Request.Category
	}
	return cats
}

func (m Matrix) validate() error {
	if len(m) == 0 {
		return ErrNoCandidates
	}
	for _, col := range m {
		if len(col.Candidates) == 0 {
			return &NoCandidatesError{Category: col.Request.Category}
		}
	}
	return nil
}

// Budget 预算上限, nil 指针表示不限预算
type Budget struct {
	Cents int64
}

// NewBudget 将欧元金额转换为以分计价的预算
func NewBudget(euros float64) *Budget {
	return &Budget{Cents: EurosToCents(euros)}
}

// EurosToCents 四舍五入转换为整数分, 规避浮点累加误差
func EurosToCents(euros float64) int64 {
	return int64(math.Round(euros * 100))
}

// CentsToEuros 将整数分还原为欧元金额
func CentsToEuros(cents int64) float64 {
	return float64(cents) / 100
}

// Pick 单个品类的最终选择, Candidate 为 nil 表示该品类被跳过
type Pick struct {
	Category  string
	Candidate *Candidate
}

// Selection 一次装配的结果, Picks 与矩阵列一一对应
type Selection struct {
	Picks     []Pick
	CostCents int64
	Quality   float64
}

// SelectedCount 返回实际选中单品的数量
func (s Selection) SelectedCount() int {
	n := 0
	for _, p := range s.Picks {
		if p.Candidate != nil {
			n++
		}
	}
	return n
}

// Items 按列顺序返回选中的单品, 跳过的品类不出现
func (s Selection) Items() []Candidate {
	items := make([]Candidate, 0, len(s.Picks))
	for _, p := range s.Picks {
		if p.Candidate != nil {
			items = append(items, *p.Candidate)
		}
	}
	return items
}

// SameItems 判断两次选择是否选中了同一组单品
func (s Selection) SameItems(other Selection) bool {
	a, b := s.Items(), other.Items()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
