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

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListConversationsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListConversationsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListConversationsLogic {
	return &ListConversationsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListConversationsLogic) ListConversations(req *types.ListConversationsRequest) (resp *types.ListConversationsResponse, err error) {
	userId, err := util.UserIdFromCtx(l.ctx)
	if err != nil {
		return nil, err
	}

	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	convs, err := l.svcCtx.History.ListConversations(l.ctx, userId, offset, limit)
	if err != nil {
		l.Logger.Errorf("list conversations failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "list conversations failed")
	}

	views := make([]types.ConversationView, 0, len(convs))
	for _, conv := range convs {
		views = append(views, helper.ToConversationView(conv))
	}

	resp = &types.ListConversationsResponse{
		StatusCode:    errno.StatusOK,
		StatusMsg:     "ok",
		Conversations: views,
	}
	return
}
