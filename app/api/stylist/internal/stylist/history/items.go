package history

import (
	"encoding/json"
	"fmt"

	"StylistAI/app/api/stylist/internal/stylist/outfit"
	"StylistAI/app/api/stylist/internal/stylist/planner"
)

// StoredItem 持久化在 outfits.items 列中的单品记录
type StoredItem struct {
	Category string `json:"main_category"`
	outfit.Candidate
}

// EncodeItems 将一次装配的选中单品序列化为 JSON 列值
func EncodeItems(sel outfit.Selection) (string, error) {
	items := make([]StoredItem, 0, len(sel.Picks))
	for _, p := range sel.Picks {
		if p.Candidate == nil {
			continue
		}
		items = append(items, StoredItem{Category: p.Category, Candidate: *p.Candidate})
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode outfit items: %w", err)
	}
	return string(raw), nil
}

// DecodeItems 还原 items 列值
func DecodeItems(raw string) ([]StoredItem, error) {
	var items []StoredItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode outfit items: %w", err)
	}
	return items, nil
}

// PreviousItems 将存储记录转换为规划器使用的上一轮单品
func PreviousItems(items []StoredItem) []planner.PreviousItem {
	out := make([]planner.PreviousItem, 0, len(items))
	for _, item := range items {
		out = append(out, planner.PreviousItem{Category: item.Category, Candidate: item.Candidate})
	}
	return out
}
