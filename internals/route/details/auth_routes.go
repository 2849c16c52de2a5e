package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/configs"
	authRoute "disiplinku_backend/internals/features/users/auth/route"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, protect fiber.Handler) {

	authRoute.AuthRoutes(app, db, cfg, protect)

}
