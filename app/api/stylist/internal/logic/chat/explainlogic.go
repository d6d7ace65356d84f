// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package chat

import (
	"context"
	"encoding/json"
	"strings"

	"StylistAI/app/api/stylist/internal/logic/helper"
	"StylistAI/app/api/stylist/internal/svc"
	"StylistAI/app/api/stylist/internal/types"
	"StylistAI/app/common/consts/errno"
	"StylistAI/app/common/util"
	chatmodel "StylistAI/app/dal/chat"

	"github.com/cloudwego/eino/schema"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

const explainSystemPrompt = `
You are an expert fashion stylist AI. Your task is to receive a user's request alongside the retrieved outfit that matches said request, and provide a justification for said outfit.

The final output MUST be textual explaining in detail how the retrieved outfit is appropriate given the user's request.

Focus on destailing how every clothing item matches the request, also highlighting how the different clothing itmes match and are coherent with one another.
`

const explainFallback = "Sorry, I couldn't generate an explanation at this time."

type ExplainLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewExplainLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ExplainLogic {
	return &ExplainLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ExplainLogic) Explain(req *types.ExplainRequest) (resp *types.ExplainResponse, err error) {
	userId, err := util.UserIdFromCtx(l.ctx)
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(req.Query)
	if query == "" || req.MessageId <= 0 {
		return nil, errors.New(int(errno.InvalidParam), "message_id and query are required")
	}
	if l.svcCtx.ChatModel == nil {
		return nil, errors.New(int(errno.PlannerUnavailable), "stylist model unavailable")
	}

	msg, err := l.svcCtx.MessagesModel.FindOne(l.ctx, req.MessageId)
	if err != nil {
		if err == chatmodel.ErrNotFound {
			return nil, errors.New(int(errno.MessageNotFound), "message not found")
		}
		l.Logger.Errorf("load message failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "load message failed")
	}

	if _, err := l.svcCtx.History.Conversation(l.ctx, msg.ConversationId, userId); err != nil {
		if err == chatmodel.ErrNotFound {
			return nil, errors.New(int(errno.ConversationNotFound), "conversation not found")
		}
		l.Logger.Errorf("load conversation failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "load conversation failed")
	}

	optionIndex := req.OptionIndex - 1
	if optionIndex < 0 {
		optionIndex = 0
	}

	stored, err := l.svcCtx.History.MessageOutfit(l.ctx, req.MessageId, optionIndex)
	if err != nil {
		if err == chatmodel.ErrNotFound {
			return nil, errors.New(int(errno.OutfitNotFound), "outfit option not found")
		}
		l.Logger.Errorf("load outfit option failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "load outfit option failed")
	}

	items := make([]types.ItemView, 0, len(stored))
	for _, item := range stored {
		items = append(items, helper.ToItemView(item.Candidate))
	}
	outfitJSON, err := json.Marshal(items)
	if err != nil {
		l.Logger.Errorf("encode outfit for explanation failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "encode outfit failed")
	}

	explanation := l.explain(query, string(outfitJSON))

	resp = &types.ExplainResponse{
		StatusCode:  errno.StatusOK,
		StatusMsg:   "ok",
		Explanation: explanation,
	}
	return
}

// explain 模型出错时退化为固定话术, 不向调用方抛错
func (l *ExplainLogic) explain(query, outfitJSON string) string {
	userBlock := "*** USER REQUEST ***\n" + query + "\n**************************\n"
	outfitBlock := "*** OUTFIT RETRIEVED ***\n" + outfitJSON + "\n**************************\n"

	msg, err := l.svcCtx.ChatModel.Generate(l.ctx, []*schema.Message{
		schema.SystemMessage(explainSystemPrompt),
		schema.UserMessage(userBlock + outfitBlock),
	})
	if err != nil {
		l.Logger.Errorf("generate explanation failed: %v", err)
		return explainFallback
	}

	explanation := strings.TrimSpace(msg.Content)
	if explanation == "" {
		return explainFallback
	}
	return explanation
}
