package retrieval

import (
	"encoding/json"
	"fmt"
	"strings"

	"StylistAI/app/api/stylist/internal/stylist/outfit"
)

const (
	vectorField  = "embedding"
	genderUnisex = "unisex"
)

// sourceFields 命中结果需要返回的字段
var sourceFields = []string{"title", "url", "image_link", "brand", "material", "price"}

// buildSearchBody 构造单个品类的 kNN 检索请求体
func buildSearchBody(vector []float64, req outfit.CategoryRequest, gender string, budget *outfit.Budget, limit, numCandidates int) map[string]any {
	filters := []map[string]any{
		{"term": map[string]any{"main_category": req.Category}},
	}

	if g := strings.ToLower(strings.TrimSpace(gender)); g != "" {
		genders := []string{g}
		if g != genderUnisex {
			genders = append(genders, genderUnisex)
		}
		filters = append(filters, map[string]any{"terms": map[string]any{"gender": genders}})
	}

	// 预算为单品价格上限, 不在检索层做组合预算拆分
	if budget != nil {
		filters = append(filters, map[string]any{
			"range": map[string]any{"price": map[string]any{"lte": outfit.CentsToEuros(budget.Cents)}},
		})
	}

	if color := strings.TrimSpace(req.Constraints.Color); color != "" {
		filters = append(filters, map[string]any{"match": map[string]any{"color": color}})
	}
	if material := strings.TrimSpace(req.Constraints.Material); material != "" {
		filters = append(filters, map[string]any{"match": map[string]any{"material": material}})
	}
	if brand := strings.TrimSpace(req.Constraints.Brand); brand != "" {
		filters = append(filters, map[string]any{"match": map[string]any{"brand": brand}})
	}

	return map[string]any{
		"knn": map[string]any{
			"field":          vectorField,
			"query_vector":   vector,
			"k":              limit,
			"num_candidates": numCandidates,
			"filter": map[string]any{
				"bool": map[string]any{"filter": filters},
			},
		},
		"size":    limit,
		"_source": sourceFields,
	}
}

type garmentSource struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	ImageLink string  `json:"image_link"`
	Brand     string  `json:"brand"`
	Material  string  `json:"material"`
	Price     float64 `json:"price"`
}

type searchHit struct {
	ID     string        `json:"_id"`
	Score  float64       `json:"_score"`
	Source garmentSource `json:"_source"`
}

type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

// decodeCandidates 将检索响应按命中顺序转换为候选列表
func decodeCandidates(body []byte) ([]outfit.Candidate, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]outfit.Candidate, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		out = append(out, outfit.Candidate{
			ID:         hit.ID,
			Title:      hit.Source.Title,
			URL:        hit.Source.URL,
			ImageURL:   hit.Source.ImageLink,
			Brand:      hit.Source.Brand,
			Material:   hit.Source.Material,
			PriceCents: outfit.EurosToCents(hit.Source.Price),
			Quality:    hit.Score,
		})
	}
	return out, nil
}
