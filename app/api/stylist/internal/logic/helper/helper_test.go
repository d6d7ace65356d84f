package helper

import (
	"database/sql"
	"testing"
	"time"

	"StylistAI/app/api/stylist/internal/stylist/history"
	"StylistAI/app/api/stylist/internal/stylist/outfit"
	chatmodel "StylistAI/app/dal/chat"

	"github.com/stretchr/testify/require"
)

func TestToItemViewRoundsMoneyAndScore(t *testing.T) {
	view := ToItemView(outfit.Candidate{
		ID:         "b7f2",
		Title:      "Linen Shirt",
		URL:        "https://shop.example/shirt",
		ImageURL:   "https://img.example/shirt.jpg",
		Brand:      "Arket",
		Material:   "linen",
		PriceCents: 8999,
		Quality:    0.87314159,
	})

	require.Equal(t, "b7f2", view.Id)
	require.Equal(t, "https://img.example/shirt.jpg", view.ImageLink)
	require.InDelta(t, 89.99, view.Price, 1e-9)
	require.InDelta(t, 0.8731, view.Similarity, 1e-9)
}

func TestToOutfitViewSkipsUnfilledCategories(t *testing.T) {
	remaining := int64(4000)
	res := &outfit.Result{
		Outfit: outfit.Selection{
			Picks: []outfit.Pick{
				{Category: outfit.CategoryTop, Candidate: &outfit.Candidate{ID: "a", PriceCents: 2000}},
				{Category: outfit.CategoryShoes, Candidate: nil},
			},
			CostCents: 2000,
		},
		CostCents:      2000,
		RemainingCents: &remaining,
		Message:        "Full Outfit Found: All requested items were successfully matched within your budget.",
	}

	view := ToOutfitView(1, res)

	require.Equal(t, int64(1), view.OptionIndex)
	require.Len(t, view.Outfit, 1)
	require.InDelta(t, 20.0, view.Cost, 1e-9)
	require.NotNil(t, view.RemainingBudget)
	require.InDelta(t, 40.0, *view.RemainingBudget, 1e-9)
	require.Contains(t, view.Message, "Full Outfit Found")
}

func TestToOutfitViewUnlimitedBudget(t *testing.T) {
	res := &outfit.Result{
		Outfit: outfit.Selection{
			Picks: []outfit.Pick{{Category: outfit.CategoryTop, Candidate: &outfit.Candidate{ID: "a", PriceCents: 500}}},
		},
		CostCents: 500,
	}

	view := ToOutfitView(2, res)
	require.Nil(t, view.RemainingBudget)
}

func TestToStoredOutfitViewShiftsIndex(t *testing.T) {
	items, err := history.EncodeItems(outfit.Selection{
		Picks: []outfit.Pick{
			{Category: outfit.CategoryTop, Candidate: &outfit.Candidate{ID: "x", Title: "Shirt", PriceCents: 1999, Quality: 0.7}},
		},
	})
	require.NoError(t, err)

	row := &chatmodel.Outfits{
		OptionIndex:    0,
		Items:          items,
		CostCents:      1999,
		RemainingCents: sql.NullInt64{Int64: 8001, Valid: true},
	}

	view, err := ToStoredOutfitView(row)
	require.NoError(t, err)

	// 落库从 0 开始, 展示从 1 开始
	require.Equal(t, int64(1), view.OptionIndex)
	require.Len(t, view.Outfit, 1)
	require.Equal(t, "x", view.Outfit[0].Id)
	require.InDelta(t, 19.99, view.Cost, 1e-9)
	require.NotNil(t, view.RemainingBudget)
	require.InDelta(t, 80.01, *view.RemainingBudget, 1e-9)
}

func TestToStoredOutfitViewNullBudget(t *testing.T) {
	view, err := ToStoredOutfitView(&chatmodel.Outfits{OptionIndex: 2, Items: "[]"})
	require.NoError(t, err)
	require.Equal(t, int64(3), view.OptionIndex)
	require.Nil(t, view.RemainingBudget)
	require.Empty(t, view.Outfit)
}

func TestToStoredOutfitViewBadItems(t *testing.T) {
	_, err := ToStoredOutfitView(&chatmodel.Outfits{Items: "not json"})
	require.Error(t, err)
}

func TestToConversationView(t *testing.T) {
	now := time.Unix(1720000000, 0)
	view := ToConversationView(&chatmodel.Conversations{
		Id:        42,
		Title:     "Beach Outfit Ideas",
		Status:    "COMPLETED",
		UpdatedAt: now,
	})

	require.Equal(t, int64(42), view.ConversationId)
	require.Equal(t, "Beach Outfit Ideas", view.Title)
	require.Equal(t, "COMPLETED", view.Status)
	require.Equal(t, now.Unix(), view.UpdatedAt)
}
