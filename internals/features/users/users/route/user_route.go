package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/configs"
	"disiplinku_backend/internals/constants"
	userCtl "disiplinku_backend/internals/features/users/users/controller"
	helper "disiplinku_backend/internals/helpers"
	authMiddleware "disiplinku_backend/internals/middlewares/auth"
)

func UserAdminRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config) {
	ctl := userCtl.NewUserController(db, helper.Validator(), cfg)

	g := api.Group("/users",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("manajemen user"), constants.AdminOnly),
	)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id/role", ctl.SetRole)
}
