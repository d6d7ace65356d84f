package planner

import (
	"testing"

	"StylistAI/app/api/stylist/internal/stylist/outfit"

	"github.com/stretchr/testify/require"
)

func previousOutfit() []PreviousItem {
	return []PreviousItem{
		{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "id-top", Title: "linen shirt", PriceCents: 2000, Quality: 0.9}},
		{Category: outfit.CategoryBottom, Candidate: outfit.Candidate{ID: "id-bottom", Title: "chinos", PriceCents: 3000, Quality: 0.8}},
		{Category: outfit.CategoryShoes, Candidate: outfit.Candidate{ID: "id-shoes", Title: "loafers", PriceCents: 5000, Quality: 0.6}},
	}
}

func TestBuildRefinementReplaceByItemID(t *testing.T) {
	mods := []Modification{{
		Action:          ActionReplace,
		ItemID:          "id-shoes",
		Category:        "shoes",
		NewItem:         PlanItem{Tag: "red boots", Fit: "comfortable"},
		NewColorPalette: "red",
		NewPattern:      "solid",
	}}

	plan, rc := BuildRefinement(previousOutfit(), mods, nil)

	require.Len(t, plan, 1)
	require.Equal(t, outfit.CategoryShoes, plan[0].Category)
	require.Equal(t, "red boots comfortable red solid", plan[0].Description)

	require.True(t, rc.IsChanged(outfit.CategoryShoes))
	require.False(t, rc.IsChanged(outfit.CategoryTop))
	require.Equal(t, "id-top", rc.Previous[outfit.CategoryTop].ID)
	require.Equal(t, "id-bottom", rc.Previous[outfit.CategoryBottom].ID)

	// 未变更品类锁定, 变更品类重新检索
	m := outfit.BuildMatrix(plan, rc)
	require.Equal(t, []string{outfit.CategoryShoes, outfit.CategoryBottom, outfit.CategoryTop}, m.Categories())
	require.Equal(t, []int{0}, m.Unlocked())
}

func TestBuildRefinementRemoveDropsCategory(t *testing.T) {
	mods := []Modification{{Action: ActionRemove, ItemID: "id-bottom"}}

	plan, rc := BuildRefinement(previousOutfit(), mods, nil)

	require.Empty(t, plan)
	require.True(t, rc.IsChanged(outfit.CategoryBottom))

	m := outfit.BuildMatrix(plan, rc)
	require.Equal(t, []string{outfit.CategoryShoes, outfit.CategoryTop}, m.Categories())
	for _, col := range m {
		require.True(t, col.Request.Locked)
	}
}

func TestBuildRefinementAddNewCategory(t *testing.T) {
	mods := []Modification{{
		Action:          ActionAdd,
		Category:        "accessories",
		NewItem:         PlanItem{Tag: "silver watch", Fit: "standard"},
		NewColorPalette: "silver",
		NewPattern:      "solid",
	}}

	plan, rc := BuildRefinement(previousOutfit(), mods, nil)

	require.Len(t, plan, 1)
	require.Equal(t, outfit.CategoryAccessories, plan[0].Category)
	require.False(t, rc.IsChanged(outfit.CategoryAccessories))

	m := outfit.BuildMatrix(plan, rc)
	require.Equal(t, []int{0}, m.Unlocked())
	require.Len(t, m, 4)
}

func TestBuildRefinementAddExistingCategoryReplaces(t *testing.T) {
	mods := []Modification{{
		Action:          ActionAdd,
		Category:        "Shoes",
		NewItem:         PlanItem{Tag: "sandals", Fit: "open"},
		NewColorPalette: "brown",
	}}

	plan, rc := BuildRefinement(previousOutfit(), mods, nil)

	require.Len(t, plan, 1)
	require.Equal(t, outfit.CategoryShoes, plan[0].Category)
	require.True(t, rc.IsChanged(outfit.CategoryShoes))
}

func TestBuildRefinementIgnoresUnknownTargets(t *testing.T) {
	mods := []Modification{
		{Action: ActionRemove, ItemID: "no-such-id"},
		{Action: ActionReplace, ItemID: "also-missing", Category: "spacesuit"},
		{Action: ActionAdd, Category: "spacesuit", NewItem: PlanItem{Tag: "helmet"}},
	}

	plan, rc := BuildRefinement(previousOutfit(), mods, nil)

	require.Empty(t, plan)
	require.Empty(t, rc.Changed)
	require.Len(t, rc.Previous, 3)
}

func TestBuildRefinementAppliesConstraints(t *testing.T) {
	constraints := map[string]outfit.Constraints{
		outfit.CategoryShoes: {Brand: "Gucci"},
	}
	mods := []Modification{{
		Action:   ActionReplace,
		ItemID:   "id-shoes",
		NewItem:  PlanItem{Tag: "red boots", Fit: "comfortable"},
		Category: "shoes",
	}}

	plan, _ := BuildRefinement(previousOutfit(), mods, constraints)

	require.Len(t, plan, 1)
	require.Equal(t, "Gucci", plan[0].Constraints.Brand)
}

func TestItemsNote(t *testing.T) {
	note := ItemsNote([][]PreviousItem{
		{
			{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "id-top", Title: "linen shirt"}},
			{Category: outfit.CategoryShoes, Candidate: outfit.Candidate{ID: "id-shoes", Title: "loafers"}},
		},
		{
			{Category: outfit.CategoryDresses, Candidate: outfit.Candidate{ID: "id-dress", Title: "midi dress"}},
		},
	})

	require.Contains(t, note, "SYSTEM NOTE")
	require.Contains(t, note, "--- Outfit Option 1 ---")
	require.Contains(t, note, "--- Outfit Option 2 ---")
	require.Contains(t, note, "- [top] ID: id-top | Name: linen shirt")
	require.Contains(t, note, "- [dresses] ID: id-dress | Name: midi dress")

	require.Empty(t, ItemsNote(nil))
}

func TestItemsNoteKeepsNumberingWhenFocused(t *testing.T) {
	note := ItemsNote([][]PreviousItem{
		nil,
		{{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "id-top", Title: "linen shirt"}}},
	})

	require.NotContains(t, note, "--- Outfit Option 1 ---")
	require.Contains(t, note, "--- Outfit Option 2 ---")
}

func TestComposeUserTurn(t *testing.T) {
	turn := composeUserTurn("female", "I need a summer outfit")

	require.Contains(t, turn, "*** USER REQUEST ***")
	require.Contains(t, turn, "I need a summer outfit")
	require.Contains(t, turn, "the gender of the user is: female")

	bare := composeUserTurn("", "hello")
	require.NotContains(t, bare, "USER GENDER")
}
