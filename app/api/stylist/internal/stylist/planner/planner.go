package planner

import (
	"context"
	"fmt"
	"strings"

	"StylistAI/app/common/consts/biz"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/zeromicro/go-zero/core/logx"
)

// Planner 封装对话与生成两条链, 驱动多轮搭配规划
type Planner struct {
	log      logx.Logger
	dialogue *dialogueChain
	generate *generateChain
}

func NewPlanner(ctx context.Context, logger logx.Logger, chatModel model.BaseChatModel) (*Planner, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	dialogue, err := newDialogueChain(ctx, logger, chatModel)
	if err != nil {
		return nil, fmt.Errorf("init dialogue chain: %w", err)
	}
	generate, err := newGenerateChain(ctx, logger, chatModel)
	if err != nil {
		return nil, fmt.Errorf("init generate chain: %w", err)
	}

	return &Planner{log: logger, dialogue: dialogue, generate: generate}, nil
}

// Converse 执行对话阶段, 判定会话是否已收集到生成所需的信息
func (p *Planner) Converse(ctx context.Context, in *Input) (*DialogueState, error) {
	if p == nil || p.dialogue == nil {
		return nil, fmt.Errorf("planner unavailable")
	}
	return p.dialogue.run(ctx, in)
}

// GeneratePlan 执行生成阶段, 仅在对话阶段返回 READY_TO_GENERATE 后调用
func (p *Planner) GeneratePlan(ctx context.Context, in *Input) (*GenerationPlan, error) {
	if p == nil || p.generate == nil {
		return nil, fmt.Errorf("planner unavailable")
	}
	return p.generate.run(ctx, in)
}

// historyMessages 把落库的会话历史还原成模型消息, 末尾追加本轮用户输入
func historyMessages(in *Input) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(in.History)+1)
	for _, ex := range in.History {
		content := ex.Content
		if ex.Note != "" {
			content += "\n\n" + ex.Note
		}
		switch ex.Role {
		case biz.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(content, nil))
		default:
			msgs = append(msgs, schema.UserMessage(content))
		}
	}
	msgs = append(msgs, schema.UserMessage(composeUserTurn(in.Gender, in.Query)))
	return msgs
}

func trimJSONBlock(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start > end {
		return content
	}
	return content[start : end+1]
}
