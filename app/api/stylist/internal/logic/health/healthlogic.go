// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package health

import (
	"context"

	"StylistAI/app/api/stylist/internal/svc"
	"StylistAI/app/api/stylist/internal/types"
	"StylistAI/app/common/consts/errno"

	"github.com/zeromicro/go-zero/core/logx"
)

type HealthLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHealthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HealthLogic {
	return &HealthLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *HealthLogic) Health() (resp *types.HealthResponse, err error) {
	resp = &types.HealthResponse{
		StatusCode: errno.StatusOK,
		StatusMsg:  "ok",
		Mysql:      "up",
	}

	db, err := l.svcCtx.MysqlConn.RawDB()
	if err != nil {
		l.Logger.Errorf("health mysql raw db failed: %v", err)
		resp.Mysql = "down"
		return resp, nil
	}
	if err := db.PingContext(l.ctx); err != nil {
		l.Logger.Errorf("health mysql ping failed: %v", err)
		resp.Mysql = "down"
	}
	return resp, nil
}
