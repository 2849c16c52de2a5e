package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/configs"
	"disiplinku_backend/internals/features/users/auth/dto"
	"disiplinku_backend/internals/features/users/auth/service"
	userDTO "disiplinku_backend/internals/features/users/users/dto"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
)

type AuthController struct {
	DB       *gorm.DB
	Service  *service.AuthService
	Validate *validator.Validate
	Secure   bool // cookie Secure (production)
}

func NewAuthController(db *gorm.DB, v *validator.Validate, svc *service.AuthService, cfg *configs.Config) *AuthController {
	return &AuthController{DB: db, Service: svc, Validate: v, Secure: cfg.IsProduction()}
}

func (ctl *AuthController) setAccessCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   ctl.Secure,
		SameSite: "Lax",
		Path:     "/",
		Expires:  exp,
	})
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := ctl.Service.LoginPassword(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ctl.setAccessCookie(c, res.AccessToken, res.ExpiresAt)
	return helper.JsonOK(c, "Login berhasil", res)
}

// POST /api/auth/google
func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := ctl.Service.LoginGoogle(c.UserContext(), req.IDToken)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ctl.setAccessCookie(c, res.AccessToken, res.ExpiresAt)
	return helper.JsonOK(c, "Login berhasil", res)
}

// POST /api/auth/logout
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(helperAuth.LocRawToken).(string)
	exp, _ := c.Locals(helperAuth.LocTokenExp).(time.Time)
	if err := ctl.Service.Logout(c.UserContext(), raw, exp); err != nil {
		return helper.FromFiberError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   ctl.Secure,
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	id, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	u := ctl.Service.Users.GetByID(c.UserContext(), id)
	if u == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", userDTO.FromModel(u))
}
