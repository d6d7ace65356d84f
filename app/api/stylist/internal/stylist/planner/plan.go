package planner

import (
	"strings"

	"StylistAI/app/api/stylist/internal/stylist/outfit"
)

// CategoryRequests 把一套方案展开成检索需求, 按规范品类顺序排列.
// 同一品类的多个单品各自成列, 通常只有配饰会出现多列.
func (o PlanOption) CategoryRequests(constraints map[string]outfit.Constraints) []outfit.CategoryRequest {
	reqs := make([]outfit.CategoryRequest, 0, len(o.Categories))
	for _, cat := range outfit.Categories {
		pc, ok := o.Categories[cat]
		if !ok {
			continue
		}
		for _, item := range pc.Items {
			desc := describeItem(item, pc)
			if desc == "" {
				continue
			}
			reqs = append(reqs, outfit.CategoryRequest{
				Category:    cat,
				Description: desc,
				Constraints: constraints[cat],
			})
		}
	}
	return reqs
}

// ResolveBudget 单套预算优先于全局预算, 0 或负数视为不限
func (p *GenerationPlan) ResolveBudget(opt PlanOption) *outfit.Budget {
	euros := p.MaxBudget
	if opt.Budget > 0 {
		euros = opt.Budget
	}
	if euros <= 0 {
		return nil
	}
	return outfit.NewBudget(euros)
}

// describeItem 把风格要素拼成检索文本: 标签 版型 色系 图案
func describeItem(item PlanItem, pc PlanCategory) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{item.Tag, item.Fit, pc.ColorPalette, pc.Pattern} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// normalizeConstraintKeys 把约束映射的品类键归一化, 丢弃非规范品类
func normalizeConstraintKeys(raw map[string]outfit.Constraints) map[string]outfit.Constraints {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]outfit.Constraints, len(raw))
	for key, c := range raw {
		canonical, ok := outfit.NormalizeCategory(key)
		if !ok {
			continue
		}
		if _, exists := out[canonical]; exists {
			continue
		}
		out[canonical] = c
	}
	return out
}
