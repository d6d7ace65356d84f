package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSigner(accessTTL, refreshTTL time.Duration) *Signer {
	return NewSigner(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpire:  accessTTL,
		RefreshExpire: refreshTTL,
	})
}

func TestIssueAndValidateRoundTrip(t *testing.T) {
	s := testSigner(time.Hour, 24*time.Hour)

	pair, expireAt, err := s.Issue(42, "nat")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, int64(time.Hour.Seconds()), pair.ExpiresIn)
	require.WithinDuration(t, time.Now().Add(time.Hour), expireAt, 5*time.Second)

	claims, err := s.ValidateAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "nat", claims.Username)
}

func TestValidateAccessRejectsExpired(t *testing.T) {
	s := testSigner(time.Millisecond, 24*time.Hour)

	pair, _, err := s.Issue(42, "nat")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = s.ValidateAccess(pair.AccessToken)
	require.ErrorIs(t, err, ErrExpired)
}

func TestValidateAccessRejectsTampered(t *testing.T) {
	s := testSigner(time.Hour, 24*time.Hour)

	pair, _, err := s.Issue(42, "nat")
	require.NoError(t, err)

	_, err = s.ValidateAccess(pair.AccessToken + "x")
	require.ErrorIs(t, err, ErrInvalid)

	other := NewSigner(Config{
		AccessSecret:  "other-secret",
		RefreshSecret: "refresh-secret",
		AccessExpire:  time.Hour,
		RefreshExpire: 24 * time.Hour,
	})
	_, err = other.ValidateAccess(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	s := testSigner(time.Hour, 24*time.Hour)

	pair, _, err := s.Issue(42, "nat")
	require.NoError(t, err)

	fresh, claims, err := s.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.NotEmpty(t, fresh.AccessToken)

	got, err := s.ValidateAccess(fresh.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "nat", got.Username)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	s := testSigner(time.Hour, 24*time.Hour)

	pair, _, err := s.Issue(42, "nat")
	require.NoError(t, err)

	// access token 不能当 refresh token 用, 两者密钥不同
	_, _, err = s.Refresh(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestIssueRequiresSecrets(t *testing.T) {
	s := NewSigner(Config{AccessExpire: time.Hour, RefreshExpire: time.Hour})
	_, _, err := s.Issue(1, "x")
	require.Error(t, err)

	s = NewSigner(Config{AccessSecret: "a", RefreshSecret: "b"})
	_, _, err = s.Issue(1, "x")
	require.Error(t, err)
}
