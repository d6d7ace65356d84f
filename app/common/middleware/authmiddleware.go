// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package middleware

import (
	"context"
	"net/http"

	"StylistAI/app/common/consts/biz"
	"StylistAI/app/common/consts/errno"
	"StylistAI/app/common/token"
	"StylistAI/app/common/util"

	"github.com/zeromicro/go-zero/rest/httpx"
	"github.com/zeromicro/x/errors"
)

type AuthMiddleware struct {
	signer *token.Signer
}

func NewAuthMiddleware(signer *token.Signer) *AuthMiddleware {
	return &AuthMiddleware{
		signer: signer,
	}
}

func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken := ""
		if cookie, err := r.Cookie(biz.ACCESSTOKEN); err == nil {
			accessToken = cookie.Value
		} else if headerToken := r.Header.Get(biz.ACCESSTOKEN); headerToken != "" {
			accessToken = headerToken
		}
		refreshToken := ""
		if cookie, err := r.Cookie(biz.REFRESHTOKEN); err == nil {
			refreshToken = cookie.Value
		} else if headerToken := r.Header.Get(biz.REFRESHTOKEN); headerToken != "" {
			refreshToken = headerToken
		}

		if refreshToken == "" || accessToken == "" {
			err := errors.New(int(errno.TokenEmpty), "token is null")
			httpx.Error(w, err)
			return
		}

		claims, err := m.signer.ValidateAccess(accessToken)
		switch err {
		case nil:
			util.InjectUserId2Ctx(r, claims.UserID)
			next(w, r)

		case token.ErrExpired:
			// access 过期则尝试用 refresh token 续签
			pair, refClaims, refErr := m.signer.Refresh(refreshToken)
			if refErr != nil {
				httpx.Error(w, errors.New(int(errno.RefreshTokenExpired), "token refresh failed"))
				return
			}
			util.SetTokenCookies(w, pair.AccessToken, pair.ExpiresIn, pair.RefreshToken)
			ctx := context.WithValue(r.Context(), biz.USER_KEY, refClaims.UserID)
			*r = *r.WithContext(ctx)
			next(w, r)

		default:
			httpx.Error(w, errors.New(int(errno.TokenEmpty), "token invalid"))
		}
	}
}
