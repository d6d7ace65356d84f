package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StylistAI/app/common/consts/biz"
	"StylistAI/app/common/token"
	"StylistAI/app/common/util"

	"github.com/stretchr/testify/require"
)

func testSigner(accessTTL, refreshTTL time.Duration) *token.Signer {
	return token.NewSigner(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpire:  accessTTL,
		RefreshExpire: refreshTTL,
	})
}

func authedRequest(t *testing.T, pair *token.Pair) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/v1/conversations", nil)
	r.AddCookie(&http.Cookie{Name: biz.ACCESSTOKEN, Value: pair.AccessToken})
	r.AddCookie(&http.Cookie{Name: biz.REFRESHTOKEN, Value: pair.RefreshToken})
	return r
}

func captureUser(t *testing.T, called *bool, wantUserId int64) http.HandlerFunc {
	t.Helper()
	return func(_ http.ResponseWriter, r *http.Request) {
		*called = true
		uid, err := util.UserIdFromCtx(r.Context())
		require.NoError(t, err)
		require.Equal(t, wantUserId, uid)
	}
}

func TestAuthMiddlewarePassesWithCookies(t *testing.T) {
	signer := testSigner(time.Hour, 24*time.Hour)
	pair, _, err := signer.Issue(42, "nat")
	require.NoError(t, err)

	called := false
	handler := NewAuthMiddleware(signer).Handle(captureUser(t, &called, 42))

	w := httptest.NewRecorder()
	handler(w, authedRequest(t, pair))

	require.True(t, called)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareHeaderFallback(t *testing.T) {
	signer := testSigner(time.Hour, 24*time.Hour)
	pair, _, err := signer.Issue(7, "nat")
	require.NoError(t, err)

	called := false
	handler := NewAuthMiddleware(signer).Handle(captureUser(t, &called, 7))

	r := httptest.NewRequest(http.MethodGet, "/v1/conversations", nil)
	r.Header.Set(biz.ACCESSTOKEN, pair.AccessToken)
	r.Header.Set(biz.REFRESHTOKEN, pair.RefreshToken)

	handler(httptest.NewRecorder(), r)
	require.True(t, called)
}

func TestAuthMiddlewareMissingTokens(t *testing.T) {
	signer := testSigner(time.Hour, 24*time.Hour)

	called := false
	handler := NewAuthMiddleware(signer).Handle(func(http.ResponseWriter, *http.Request) { called = true })

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/v1/conversations", nil))

	require.False(t, called)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMiddlewareSilentRefresh(t *testing.T) {
	signer := testSigner(time.Millisecond, 24*time.Hour)
	pair, _, err := signer.Issue(42, "nat")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	called := false
	handler := NewAuthMiddleware(signer).Handle(captureUser(t, &called, 42))

	w := httptest.NewRecorder()
	handler(w, authedRequest(t, pair))

	require.True(t, called)

	// 续签后的新 token 对通过 Set-Cookie 下发
	cookies := w.Result().Cookies()
	names := make(map[string]string, len(cookies))
	for _, c := range cookies {
		names[c.Name] = c.Value
	}
	require.Contains(t, names, biz.ACCESSTOKEN)
	require.Contains(t, names, biz.REFRESHTOKEN)

	claims, err := signer.ValidateAccess(names[biz.ACCESSTOKEN])
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
}

func TestAuthMiddlewareRejectsTamperedAccess(t *testing.T) {
	signer := testSigner(time.Hour, 24*time.Hour)
	pair, _, err := signer.Issue(42, "nat")
	require.NoError(t, err)

	called := false
	handler := NewAuthMiddleware(signer).Handle(func(http.ResponseWriter, *http.Request) { called = true })

	r := httptest.NewRequest(http.MethodGet, "/v1/conversations", nil)
	r.AddCookie(&http.Cookie{Name: biz.ACCESSTOKEN, Value: pair.AccessToken + "x"})
	r.AddCookie(&http.Cookie{Name: biz.REFRESHTOKEN, Value: pair.RefreshToken})

	w := httptest.NewRecorder()
	handler(w, r)

	require.False(t, called)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMiddlewareExpiredRefreshFails(t *testing.T) {
	signer := testSigner(time.Millisecond, time.Millisecond)
	pair, _, err := signer.Issue(42, "nat")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	called := false
	handler := NewAuthMiddleware(signer).Handle(func(http.ResponseWriter, *http.Request) { called = true })

	w := httptest.NewRecorder()
	handler(w, authedRequest(t, pair))

	require.False(t, called)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
