// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package conversation

import (
	"context"

	"StylistAI/app/api/stylist/internal/svc"
	"StylistAI/app/api/stylist/internal/types"
	"StylistAI/app/common/consts/errno"
	"StylistAI/app/common/util"
	chatmodel "StylistAI/app/dal/chat"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type DeleteConversationLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDeleteConversationLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DeleteConversationLogic {
	return &DeleteConversationLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DeleteConversationLogic) DeleteConversation(req *types.DeleteConversationRequest) (resp *types.DeleteConversationResponse, err error) {
	userId, err := util.UserIdFromCtx(l.ctx)
	if err != nil {
		return nil, err
	}

	// 先做归属校验再删除
	if _, err := l.svcCtx.History.Conversation(l.ctx, req.ConversationId, userId); err != nil {
		if err == chatmodel.ErrNotFound {
			return nil, errors.New(int(errno.ConversationNotFound), "conversation not found")
		}
		l.Logger.Errorf("load conversation failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "load conversation failed")
	}

	if err := l.svcCtx.History.DeleteConversation(l.ctx, req.ConversationId); err != nil {
		l.Logger.Errorf("delete conversation failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "delete conversation failed")
	}

	resp = &types.DeleteConversationResponse{
		StatusCode: errno.StatusOK,
		StatusMsg:  "ok",
	}
	return
}
