// internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"disiplinku_backend/internals/configs"
	authRepo "disiplinku_backend/internals/features/users/auth/repository"
	userModel "disiplinku_backend/internals/features/users/users/model"
	userRepo "disiplinku_backend/internals/features/users/users/repository"
)

const (
	LoginMethodPassword = "password"
	LoginMethodGoogle   = "google"
)

// GoogleIdentity: klaim yang dipakai dari ID token Google.
type GoogleIdentity struct {
	Sub   string
	Email string
	Name  string
}

// GoogleVerifier bisa diganti di test.
type GoogleVerifier func(idToken, clientID string) (*GoogleIdentity, error)

func verifyGoogleIDToken(idToken, clientID string) (*GoogleIdentity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
		return nil, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	return &GoogleIdentity{Sub: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
}

type LoginResult struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresAt   time.Time            `json:"expires_at"`
	User        *userModel.UserModel `json:"user"`
}

type AuthService struct {
	Users          *userRepo.UserRepository
	Tokens         *TokenService
	Blacklist      *authRepo.TokenBlacklistRepository
	GoogleClientID string
	VerifyGoogle   GoogleVerifier
}

func NewAuthService(db *gorm.DB, cfg *configs.Config) *AuthService {
	return &AuthService{
		Users:          userRepo.NewUserRepository(db, cfg.OwnerOpenID),
		Tokens:         NewTokenService(cfg.JWTSecret, cfg.JWTTTL),
		Blacklist:      authRepo.NewTokenBlacklistRepository(db, cfg.JWTSecret),
		GoogleClientID: cfg.GoogleClientID,
		VerifyGoogle:   verifyGoogleIDToken,
	}
}

// HashPassword dipakai juga oleh CLI adduser.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *AuthService) issue(u *userModel.UserModel) (*LoginResult, error) {
	tok, exp, err := s.Tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: tok, TokenType: "Bearer", ExpiresAt: exp, User: u}, nil
}

/* ==========================
   LOGIN PASSWORD
========================== */

func (s *AuthService) LoginPassword(ctx context.Context, email, password string) (*LoginResult, error) {
	invalid := fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")

	u := s.Users.GetByEmail(ctx, email)
	if u == nil || u.UserPasswordHash == nil || *u.UserPasswordHash == "" {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.UserPasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}

	updated, err := s.Users.Upsert(ctx, userRepo.UpsertInput{
		ID:          u.UserID,
		LoginMethod: LoginMethodPassword,
	})
	if err != nil {
		return nil, err
	}
	return s.issue(updated)
}

/* ==========================
   LOGIN GOOGLE
========================== */

func (s *AuthService) LoginGoogle(ctx context.Context, idToken string) (*LoginResult, error) {
	if s.GoogleClientID == "" {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Login Google belum dikonfigurasi")
	}
	id, err := s.VerifyGoogle(strings.TrimSpace(idToken), s.GoogleClientID)
	if err != nil || id == nil || id.Sub == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Google ID token tidak valid")
	}

	in := userRepo.UpsertInput{ID: id.Sub, LoginMethod: LoginMethodGoogle}
	if id.Name != "" {
		in.Name = &id.Name
	}
	if id.Email != "" {
		in.Email = &id.Email
	}
	u, err := s.Users.Upsert(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

/* ==========================
   LOGOUT
========================== */

// Logout mem-blacklist token sampai exp-nya, lalu membersihkan baris kedaluwarsa.
func (s *AuthService) Logout(ctx context.Context, rawToken string, exp time.Time) error {
	if rawToken == "" {
		return nil
	}
	if exp.IsZero() {
		exp = time.Now().UTC().Add(s.Tokens.TTL)
	}
	if err := s.Blacklist.Add(ctx, rawToken, exp); err != nil {
		return err
	}
	if n, err := s.Blacklist.PurgeExpired(ctx, time.Now()); err != nil {
		log.Printf("[WARN] purge blacklist: %v", err)
	} else if n > 0 {
		log.Printf("[INFO] %d token blacklist kedaluwarsa dihapus", n)
	}
	return nil
}
