// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/configs"
	authCtl "disiplinku_backend/internals/features/users/auth/controller"
	"disiplinku_backend/internals/features/users/auth/service"
	helper "disiplinku_backend/internals/helpers"
	rateLimiter "disiplinku_backend/internals/middlewares"
)

// AuthRoutes: /api/auth. protect = middleware JWT untuk logout & me.
func AuthRoutes(app fiber.Router, db *gorm.DB, cfg *configs.Config, protect fiber.Handler) {
	svc := service.NewAuthService(db, cfg)
	ctl := authCtl.NewAuthController(db, helper.Validator(), svc, cfg)

	g := app.Group("/api/auth")

	// 🔓 Public
	loginLimit := rateLimiter.LoginRateLimiter(cfg.LoginRateLimitMax)
	g.Post("/login", loginLimit, ctl.Login)
	g.Post("/google", loginLimit, ctl.LoginGoogle)

	// 🔐 Protected
	g.Post("/logout", protect, ctl.Logout)
	g.Get("/me", protect, ctl.Me)
}
