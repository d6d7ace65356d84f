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

type dialogueChain struct {
	log      logx.Logger
	runnable compose.Runnable[*Input, *DialogueState]
}

func newDialogueChain(ctx context.Context, logger logx.Logger, chatModel model.BaseChatModel) (*dialogueChain, error) {
	chain := compose.NewChain[*Input, *DialogueState]()

	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, in *Input) ([]*schema.Message, error) {
		if in == nil || strings.TrimSpace(in.Query) == "" {
			return nil, fmt.Errorf("empty query")
		}
		msgs := []*schema.Message{schema.SystemMessage(dialogueSystemPrompt)}
		return append(msgs, historyMessages(in)...), nil
	}))

	chain.AppendChatModel(chatModel)

	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, msg *schema.Message) (*DialogueState, error) {
		if msg == nil {
			return nil, fmt.Errorf("empty message")
		}
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			return nil, fmt.Errorf("empty response")
		}

		clean := trimJSONBlock(content)

		var state DialogueState
		if err := json.Unmarshal([]byte(clean), &state); err != nil {
			return nil, fmt.Errorf("unmarshal dialogue state: %w", err)
		}
		state.RawOutput = clean
		return coerceDialogueState(&state)
	}))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, err
	}

	return &dialogueChain{log: logger, runnable: runnable}, nil
}

func (c *dialogueChain) run(ctx context.Context, in *Input) (*DialogueState, error) {
	if c == nil || c.runnable == nil {
		return nil, fmt.Errorf("dialogue chain unavailable")
	}
	return c.runnable.Invoke(ctx, in)
}

// coerceDialogueState 收敛模型输出: 状态必须落在已知集合, 选项数夹在 1..3
func coerceDialogueState(state *DialogueState) (*DialogueState, error) {
	state.Status = strings.TrimSpace(state.Status)
	switch state.Status {
	case StatusAwaitingInput, StatusReadyToGenerate, StatusGuardrail:
	default:
		if strings.TrimSpace(state.Message) != "" {
			state.Status = StatusGuardrail
		} else {
			return nil, fmt.Errorf("unexpected dialogue status %q", state.Status)
		}
	}

	if state.NumOutfits < defaultOutfitOptions {
		state.NumOutfits = defaultOutfitOptions
	}
	if state.NumOutfits > maxOutfitOptions {
		state.NumOutfits = maxOutfitOptions
	}

	state.HardConstraints = normalizeConstraintKeys(state.HardConstraints)
	return state, nil
}
