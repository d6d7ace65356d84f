package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/zeromicro/go-zero/core/logx"
)

type generateChain struct {
	log      logx.Logger
	runnable compose.Runnable[*Input, *GenerationPlan]
}

func newGenerateChain(ctx context.Context, logger logx.Logger, chatModel model.BaseChatModel) (*generateChain, error) {
	chain := compose.NewChain[*Input, *GenerationPlan]()

	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, in *Input) ([]*schema.Message, error) {
		if in == nil || strings.TrimSpace(in.Query) == "" {
			return nil, fmt.Errorf("empty query")
		}
		msgs := []*schema.Message{schema.SystemMessage(generateSystemPrompt)}
		msgs = append(msgs, historyMessages(in)...)
		return append(msgs, schema.UserMessage(generateTriggerPrompt)), nil
	}))

	chain.AppendChatModel(chatModel)

	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, msg *schema.Message) (*GenerationPlan, error) {
		if msg == nil {
			return nil, fmt.Errorf("empty message")
		}
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			return nil, fmt.Errorf("empty response")
		}

		clean := trimJSONBlock(content)

		var plan GenerationPlan
		if err := json.Unmarshal([]byte(clean), &plan); err != nil {
			return nil, fmt.Errorf("unmarshal generation plan: %w", err)
		}
		plan.RawOutput = clean
		return coerceGenerationPlan(&plan)
	}))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, err
	}

	return &generateChain{log: logger, runnable: runnable}, nil
}

func (c *generateChain) run(ctx context.Context, in *Input) (*GenerationPlan, error) {
	if c == nil || c.runnable == nil {
		return nil, fmt.Errorf("generate chain unavailable")
	}
	return c.runnable.Invoke(ctx, in)
}

// coerceGenerationPlan 收敛生成结果: 调整模式默认 NEW_OUTFIT, 约束键归一化, 选项数封顶
func coerceGenerationPlan(plan *GenerationPlan) (*GenerationPlan, error) {
	plan.RefinementType = strings.ToUpper(strings.TrimSpace(plan.RefinementType))
	switch plan.RefinementType {
	case RefinementNewOutfit, RefinementRefineCurrent:
	case "":
		plan.RefinementType = RefinementNewOutfit
	default:
		plan.RefinementType = RefinementNewOutfit
	}

	if len(plan.Outfits) > maxOutfitOptions {
		plan.Outfits = plan.Outfits[:maxOutfitOptions]
	}

	if plan.RefinementType == RefinementNewOutfit && len(plan.Outfits) == 0 && strings.TrimSpace(plan.Message) == "" {
		return nil, fmt.Errorf("generation returned no outfit options")
	}

	plan.HardConstraints = normalizeConstraintKeys(plan.HardConstraints)
	return plan, nil
}
