package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/configs"
	userRoute "disiplinku_backend/internals/features/users/users/route"
)

func UserRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config) {
	userRoute.UserAdminRoutes(api, db, cfg)
}
