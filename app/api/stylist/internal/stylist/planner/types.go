package planner

import (
	"encoding/json"

	"StylistAI/app/api/stylist/internal/stylist/outfit"
)

// 对话阶段可能的会话状态
const (
	StatusAwaitingInput   = "AWAITING_INPUT"
	StatusReadyToGenerate = "READY_TO_GENERATE"
	StatusGuardrail       = "Guardrail"
)

// 生成阶段的两种模式: 全新搭配或在上一套基础上调整
const (
	RefinementNewOutfit     = "NEW_OUTFIT"
	RefinementRefineCurrent = "REFINE_CURRENT"
)

// 调整动作
const (
	ActionAdd     = "ADD"
	ActionRemove  = "REMOVE"
	ActionReplace = "REPLACE"
)

const (
	defaultOutfitOptions = 1
	maxOutfitOptions     = 3
)

// Exchange 会话历史中的一轮消息
type Exchange struct {
	Role    string
	Content string
	// Note 附加在消息后的系统备注, 用于向模型暴露上一套搭配的单品 ID
	Note string
}

// Input 规划器两个阶段共用的入参
type Input struct {
	Query   string
	History []Exchange
	Gender  string
}

// DialogueState 对话阶段的模型输出
type DialogueState struct {
	Status            string                         `json:"status"`
	MissingInfo       string                         `json:"missing_info"`
	MaxBudget         float64                        `json:"max_budget"`
	HardConstraints   map[string]outfit.Constraints  `json:"hard_constraints"`
	Message           string                         `json:"message"`
	ConversationTitle string                         `json:"conversation_title"`
	NumOutfits        int                            `json:"num_outfits"`
	RawOutput         string                         `json:"-"`
}

// PlanItem 单品建议
type PlanItem struct {
	Tag string `json:"tag"`
	Fit string `json:"fit"`
}

// PlanCategory 某个品类的风格建议
type PlanCategory struct {
	ColorPalette string     `json:"color_palette"`
	Pattern      string     `json:"pattern"`
	Items        []PlanItem `json:"items"`
}

// PlanOption 一套搭配方案: 品类键与可选的单套预算混在同一层 JSON 对象里
type PlanOption struct {
	// Categories 归一化后的品类建议
	Categories map[string]PlanCategory
	// Budget 单套预算覆盖全局预算, 0 表示沿用全局
	Budget float64
	// Unknown 被丢弃的非规范品类键, 供调用方记录日志
	Unknown []string
}

func (o *PlanOption) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	o.Categories = make(map[string]PlanCategory, len(raw))
	for key, val := range raw {
		if key == "budget" {
			if err := json.Unmarshal(val, &o.Budget); err != nil {
				o.Budget = 0
			}
			continue
		}
		canonical, ok := outfit.NormalizeCategory(key)
		if !ok {
			o.Unknown = append(o.Unknown, key)
			continue
		}
		var pc PlanCategory
		if err := json.Unmarshal(val, &pc); err != nil {
			return err
		}
		o.Categories[canonical] = pc
	}
	return nil
}

// Modification 针对上一套搭配的单条调整指令
type Modification struct {
	Action          string   `json:"action"`
	ItemID          string   `json:"item_id"`
	Category        string   `json:"category"`
	NewItem         PlanItem `json:"new_item"`
	NewColorPalette string   `json:"new_color_palette"`
	NewPattern      string   `json:"new_pattern"`
}

// GenerationPlan 生成阶段的模型输出
type GenerationPlan struct {
	Outfits         []PlanOption                  `json:"outfits"`
	MaxBudget       float64                       `json:"max_budget"`
	HardConstraints map[string]outfit.Constraints `json:"hard_constraints"`
	RefinementType  string                        `json:"refinement_type"`
	Modifications   []Modification                `json:"modifications"`
	Message         string                        `json:"message"`
	RawOutput       string                        `json:"-"`
}

// PreviousItem 上一套搭配中展示给用户的一件单品
type PreviousItem struct {
	Category  string
	Candidate outfit.Candidate
}
