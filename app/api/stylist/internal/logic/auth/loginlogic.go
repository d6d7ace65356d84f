// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package auth

import (
	"context"
	"strings"

	"StylistAI/app/api/stylist/internal/svc"
	"StylistAI/app/api/stylist/internal/types"
	"StylistAI/app/common/consts/errno"
	usermodel "StylistAI/app/dal/user"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
	"golang.org/x/crypto/bcrypt"
)

type LoginLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewLoginLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LoginLogic {
	return &LoginLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *LoginLogic) Login(req *types.LoginRequest) (resp *types.LoginResponse, err error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		return nil, errors.New(int(errno.InvalidParam), "username and password are required")
	}

	if l.svcCtx.Bloom != nil {
		exists, berr := l.svcCtx.Bloom.Exists([]byte(username))
		if berr != nil {
			l.Logger.Errorf("login bloom exists failed: %v", berr)
		} else if !exists {
			return nil, errors.New(int(errno.UserNotFound), "user not found")
		}
	}

	dbUser, err := l.svcCtx.UsersModel.FindOneByUsername(l.ctx, username)
	if err != nil {
		if err == usermodel.ErrNotFound {
			return nil, errors.New(int(errno.UserNotFound), "user not found")
		}
		l.Logger.Errorf("find user by username failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(password)); err != nil {
		return nil, errors.New(int(errno.InvalidCredentials), "invalid credentials")
	}

	pair, _, err := l.svcCtx.Signer.Issue(dbUser.Id, dbUser.Username)
	if err != nil {
		l.Logger.Errorf("issue token pair failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "issue token failed")
	}

	resp = &types.LoginResponse{
		StatusCode:   errno.StatusOK,
		StatusMsg:    "ok",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User: &types.UserProfile{
			UserId:   dbUser.Id,
			Username: dbUser.Username,
			Gender:   dbUser.Gender,
		},
	}
	return
}
