// internals/features/users/auth/service/token_service.go
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	userModel "disiplinku_backend/internals/features/users/users/model"
)

const defaultAccessTTL = 7 * 24 * time.Hour

// TokenService menerbitkan access token HS256 (sub, name, role, iat, exp).
type TokenService struct {
	Secret string
	TTL    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	return &TokenService{Secret: secret, TTL: ttl, now: func() time.Time { return time.Now().UTC() }}
}

func (s *TokenService) Issue(u *userModel.UserModel) (string, time.Time, error) {
	if s.Secret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET belum diset")
	}
	now := s.now()
	exp := now.Add(s.TTL)
	claims := jwt.MapClaims{
		"sub":  u.UserID,
		"name": u.DisplayName(),
		"role": u.UserRole,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}
	return tok, time.Unix(exp.Unix(), 0).UTC(), nil
}
