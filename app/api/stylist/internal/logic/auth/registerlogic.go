// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package auth

import (
	"context"
	"strings"

	"StylistAI/app/api/stylist/internal/svc"
	"StylistAI/app/api/stylist/internal/types"
	"StylistAI/app/common/consts/errno"
	"StylistAI/app/common/snowflake"
	usermodel "StylistAI/app/dal/user"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
	"golang.org/x/crypto/bcrypt"
)

type RegisterLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRegisterLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RegisterLogic {
	return &RegisterLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RegisterLogic) Register(req *types.RegisterRequest) (resp *types.RegisterResponse, err error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		return nil, errors.New(int(errno.InvalidParam), "username and password are required")
	}
	gender := strings.ToLower(strings.TrimSpace(req.Gender))

	// 布隆过滤器快速过滤, 没命中说明一定没有这个用户
	if l.svcCtx.Bloom != nil {
		exists, berr := l.svcCtx.Bloom.Exists([]byte(username))
		if berr != nil {
			l.Logger.Errorf("register bloom exists failed: %v", berr)
		} else if exists {
			if _, ferr := l.svcCtx.UsersModel.FindOneByUsername(l.ctx, username); ferr == nil {
				return nil, errors.New(int(errno.UserAlreadyExists), "user already exists")
			}
		}
	}

	if _, ferr := l.svcCtx.UsersModel.FindOneByUsername(l.ctx, username); ferr == nil {
		return nil, errors.New(int(errno.UserAlreadyExists), "user already exists")
	} else if ferr != usermodel.ErrNotFound {
		l.Logger.Errorf("find user by username failed: %v", ferr)
		return nil, errors.New(int(errno.InternalError), "db error")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newId := snowflake.Next()
	if _, err := l.svcCtx.UsersModel.Insert(l.ctx, &usermodel.Users{
		Id:       newId,
		Username: username,
		Password: string(hashedPwd),
		Gender:   gender,
	}); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, errors.New(int(errno.UserAlreadyExists), "user already exists")
		}
		l.Logger.Errorf("insert user failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "insert user failed")
	}

	if l.svcCtx.Bloom != nil {
		if err := l.svcCtx.Bloom.Add([]byte(username)); err != nil {
			l.Logger.Errorf("register bloom add failed: %v", err)
		}
	}

	resp = &types.RegisterResponse{
		StatusCode: errno.StatusOK,
		StatusMsg:  "ok",
		User: &types.UserProfile{
			UserId:   newId,
			Username: username,
			Gender:   gender,
		},
	}
	return
}
