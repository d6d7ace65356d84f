package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"StylistAI/app/common/consts/biz"
	chatmodel "StylistAI/app/dal/chat"
	"StylistAI/app/services/worker/internal/svc"
	"StylistAI/app/services/worker/tasks"

	"github.com/cloudwego/eino/schema"
	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
)

const titlePrompt = "Generate strictly ONE single title based on this prompt: '%s'. " +
	"The title must be short, concise and informative. " +
	"Do not provide a list. Do not output intro text. Output ONLY the title."

// newGenerateTitleHandler 用首条用户消息给会话补标题, 会话已删除或已有标题都直接丢弃任务
func newGenerateTitleHandler(sc *svc.ServiceContext) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p tasks.GenerateTitlePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("unmarshal generate title payload: %w", err)
		}

		conv, err := sc.Conversations.FindOne(ctx, p.ConversationId)
		if err != nil {
			if errors.Is(err, chatmodel.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("load conversation %d: %w", p.ConversationId, err)
		}
		if conv.Title != "" {
			return nil
		}

		first, err := sc.Messages.FindFirstByRole(ctx, p.ConversationId, biz.RoleUser)
		if err != nil {
			if errors.Is(err, chatmodel.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("load first user message of %d: %w", p.ConversationId, err)
		}

		if sc.ChatModel == nil {
			return fmt.Errorf("chat model unavailable")
		}

		out, err := sc.ChatModel.Generate(ctx, []*schema.Message{
			schema.UserMessage(fmt.Sprintf(titlePrompt, first.Content)),
		})
		if err != nil {
			return fmt.Errorf("generate title for %d: %w", p.ConversationId, err)
		}

		title := strings.TrimSpace(out.Content)
		if title == "" {
			return fmt.Errorf("empty title for conversation %d", p.ConversationId)
		}

		if err := sc.Conversations.UpdateTitle(ctx, p.ConversationId, title); err != nil {
			return fmt.Errorf("save title of %d: %w", p.ConversationId, err)
		}

		logx.WithContext(ctx).Infow("conversation title generated",
			logx.Field("conversation_id", p.ConversationId),
			logx.Field("title", title))
		return nil
	}
}
