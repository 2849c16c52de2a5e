package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	atCtl "disiplinku_backend/internals/features/discipline/action_types/controller"
	helper "disiplinku_backend/internals/helpers"
	authMiddleware "disiplinku_backend/internals/middlewares/auth"
)

func ActionTypeRoutes(api fiber.Router, db *gorm.DB) {
	ctl := atCtl.NewActionTypeController(db, helper.Validator())
	admin := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("jenis tindakan"), constants.AdminOnly)

	g := api.Group("/action-types")
	g.Get("/", ctl.GetAll)
	g.Get("/active", ctl.GetActive)
	g.Post("/", admin, ctl.Create)
	g.Patch("/:id", admin, ctl.Update)
	g.Delete("/:id", admin, ctl.Delete)
}
