package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpire  time.Duration
	RefreshExpire time.Duration
}

type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Pair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Signer issues and validates HS256 access/refresh token pairs.
type Signer struct {
	cfg Config
}

func NewSigner(cfg Config) *Signer {
	return &Signer{cfg: cfg}
}

// Issue 签发 access+refresh token 对
func (s *Signer) Issue(userID int64, username string) (*Pair, time.Time, error) {
	accessToken, accessExpireAt, err := signToken(s.cfg.AccessSecret, s.cfg.AccessExpire, userID, username)
	if err != nil {
		return nil, time.Time{}, err
	}

	refreshToken, _, err := signToken(s.cfg.RefreshSecret, s.cfg.RefreshExpire, userID, username)
	if err != nil {
		return nil, time.Time{}, err
	}

	pair := &Pair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.AccessExpire.Seconds()),
	}
	return pair, accessExpireAt, nil
}

// ValidateAccess 校验 access token，过期返回 ErrExpired
func (s *Signer) ValidateAccess(tokenStr string) (*Claims, error) {
	claims, err := parseToken(tokenStr, s.cfg.AccessSecret)
	if err != nil {
		if isExpiredErr(err) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	return claims, nil
}

// Refresh 用 refresh token 换发新的 token 对
func (s *Signer) Refresh(refreshToken string) (*Pair, *Claims, error) {
	claims, err := parseToken(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		if isExpiredErr(err) {
			return nil, nil, ErrExpired
		}
		return nil, nil, ErrInvalid
	}

	pair, _, err := s.Issue(claims.UserID, claims.Username)
	if err != nil {
		return nil, nil, err
	}
	return pair, claims, nil
}

func signToken(secret string, ttl time.Duration, userID int64, username string) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		return "", time.Time{}, errors.New("token ttl must be positive")
	}

	now := time.Now()
	expireAt := now.Add(ttl)
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expireAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expireAt, nil
}

func parseToken(tokenStr, secret string) (*Claims, error) {
	if tokenStr == "" {
		return nil, errors.New("token is empty")
	}
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

func isExpiredErr(err error) bool {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return true
	}
	var ve *jwt.ValidationError
	return errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0
}
