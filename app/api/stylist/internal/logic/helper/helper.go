package helper

import (
	"math"

	"StylistAI/app/api/stylist/internal/stylist/history"
	"StylistAI/app/api/stylist/internal/stylist/outfit"
	"StylistAI/app/api/stylist/internal/types"
	chatmodel "StylistAI/app/dal/chat"
)

func roundEuros(cents int64) float64 {
	return math.Round(outfit.CentsToEuros(cents)*100) / 100
}

func roundSimilarity(score float64) float64 {
	return math.Round(score*10000) / 10000
}

func ToItemView(c outfit.Candidate) types.ItemView {
	return types.ItemView{
		Id:         c.ID,
		Title:      c.Title,
		Url:        c.URL,
		ImageLink:  c.ImageURL,
		Brand:      c.Brand,
		Material:   c.Material,
		Price:      roundEuros(c.PriceCents),
		Similarity: roundSimilarity(c.Quality),
	}
}

func ToOutfitView(optionIndex int64, res *outfit.Result) types.OutfitView {
	items := res.Outfit.Items()
	views := make([]types.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ToItemView(item))
	}

	view := types.OutfitView{
		OptionIndex: optionIndex,
		Outfit:      views,
		Cost:        roundEuros(res.CostCents),
		Message:     res.Message,
	}
	if res.RemainingCents != nil {
		remaining := roundEuros(*res.RemainingCents)
		view.RemainingBudget = &remaining
	}
	return view
}

// ToStoredOutfitView 把落库的搭配选项还原成展示结构, 历史视图不含当时的预算提示语
func ToStoredOutfitView(row *chatmodel.Outfits) (types.OutfitView, error) {
	stored, err := history.DecodeItems(row.Items)
	if err != nil {
		return types.OutfitView{}, err
	}

	views := make([]types.ItemView, 0, len(stored))
	for _, item := range stored {
		views = append(views, ToItemView(item.Candidate))
	}

	// 落库序号从 0 开始, 对外展示统一从 1 开始
	view := types.OutfitView{
		OptionIndex: row.OptionIndex + 1,
		Outfit:      views,
		Cost:        roundEuros(row.CostCents),
	}
	if row.RemainingCents.Valid {
		remaining := roundEuros(row.RemainingCents.Int64)
		view.RemainingBudget = &remaining
	}
	return view, nil
}

func ToConversationView(conv *chatmodel.Conversations) types.ConversationView {
	return types.ConversationView{
		ConversationId: conv.Id,
		Title:          conv.Title,
		Status:         conv.Status,
		UpdatedAt:      conv.UpdatedAt.Unix(),
	}
}
