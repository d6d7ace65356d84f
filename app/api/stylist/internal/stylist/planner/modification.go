package planner

import (
	"strings"

	"StylistAI/app/api/stylist/internal/stylist/outfit"
)

// BuildRefinement 把调整指令翻译成新的检索计划与锁定上下文:
// REMOVE 的品类既不检索也不保留; REPLACE 与 ADD 的品类重新检索;
// 其余品类沿用上一套的单品并锁定. 无法对应到上一套或规范品类的指令被丢弃.
func BuildRefinement(previous []PreviousItem, mods []Modification, constraints map[string]outfit.Constraints) ([]outfit.CategoryRequest, *outfit.RefinementContext) {
	prevByID := make(map[string]PreviousItem, len(previous))
	prevByCategory := make(map[string]outfit.Candidate, len(previous))
	for _, item := range previous {
		if _, seen := prevByID[item.Candidate.ID]; !seen {
			prevByID[item.Candidate.ID] = item
		}
		if _, seen := prevByCategory[item.Category]; !seen {
			prevByCategory[item.Category] = item.Candidate
		}
	}

	changed := make(map[string]struct{})
	var plan []outfit.CategoryRequest

	appendFresh := func(cat string, mod Modification) {
		desc := describeItem(mod.NewItem, PlanCategory{
			ColorPalette: mod.NewColorPalette,
			Pattern:      mod.NewPattern,
		})
		plan = append(plan, outfit.CategoryRequest{
			Category:    cat,
			Description: desc,
			Constraints: constraints[cat],
		})
	}

	for _, mod := range mods {
		switch strings.ToUpper(strings.TrimSpace(mod.Action)) {
		case ActionRemove:
			item, ok := prevByID[strings.TrimSpace(mod.ItemID)]
			if !ok {
				continue
			}
			changed[item.Category] = struct{}{}

		case ActionReplace:
			cat := ""
			if item, ok := prevByID[strings.TrimSpace(mod.ItemID)]; ok {
				cat = item.Category
			} else if canonical, ok := outfit.NormalizeCategory(mod.Category); ok {
				cat = canonical
			}
			if cat == "" {
				continue
			}
			changed[cat] = struct{}{}
			appendFresh(cat, mod)

		case ActionAdd:
			cat, ok := outfit.NormalizeCategory(mod.Category)
			if !ok {
				continue
			}
			if _, exists := prevByCategory[cat]; exists {
				// 品类已存在时按替换处理
				changed[cat] = struct{}{}
			}
			appendFresh(cat, mod)
		}
	}

	rc := &outfit.RefinementContext{
		Previous: prevByCategory,
		Changed:  changed,
	}
	return plan, rc
}
