// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package conversation

import (
	"context"

	"StylistAI/app/api/stylist/internal/logic/helper"
	"StylistAI/app/api/stylist/internal/svc"
	"StylistAI/app/api/stylist/internal/types"
	"StylistAI/app/common/consts/errno"
	"StylistAI/app/common/util"
	chatmodel "StylistAI/app/dal/chat"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type GetConversationLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetConversationLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetConversationLogic {
	return &GetConversationLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetConversationLogic) GetConversation(req *types.GetConversationRequest) (resp *types.GetConversationResponse, err error) {
	userId, err := util.UserIdFromCtx(l.ctx)
	if err != nil {
		return nil, err
	}

	conv, err := l.svcCtx.History.Conversation(l.ctx, req.ConversationId, userId)
	if err != nil {
		if err == chatmodel.ErrNotFound {
			return nil, errors.New(int(errno.ConversationNotFound), "conversation not found")
		}
		l.Logger.Errorf("load conversation failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "load conversation failed")
	}

	msgs, outfitsByMsg, err := l.svcCtx.History.ConversationDetail(l.ctx, conv.Id)
	if err != nil {
		l.Logger.Errorf("load conversation detail failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "load conversation detail failed")
	}

	msgViews := make([]types.MessageView, 0, len(msgs))
	for _, msg := range msgs {
		view := types.MessageView{
			MessageId: msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt.Unix(),
		}
		for _, row := range outfitsByMsg[msg.Id] {
			outfitView, derr := helper.ToStoredOutfitView(row)
			if derr != nil {
				// 单条脏数据不影响整个会话视图
				l.Logger.Errorf("decode stored outfit %d failed: %v", row.Id, derr)
				continue
			}
			view.Outfits = append(view.Outfits, outfitView)
		}
		msgViews = append(msgViews, view)
	}

	resp = &types.GetConversationResponse{
		StatusCode:   errno.StatusOK,
		StatusMsg:    "ok",
		Conversation: helper.ToConversationView(conv),
		Messages:     msgViews,
	}
	return
}
