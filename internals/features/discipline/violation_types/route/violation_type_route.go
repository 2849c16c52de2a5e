package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	vtCtl "disiplinku_backend/internals/features/discipline/violation_types/controller"
	helper "disiplinku_backend/internals/helpers"
	authMiddleware "disiplinku_backend/internals/middlewares/auth"
)

func ViolationTypeRoutes(api fiber.Router, db *gorm.DB) {
	ctl := vtCtl.NewViolationTypeController(db, helper.Validator())
	admin := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("jenis pelanggaran"), constants.AdminOnly)

	g := api.Group("/violation-types")
	g.Get("/", ctl.GetAll)
	g.Get("/active", ctl.GetActive)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", admin, ctl.Create)
	g.Patch("/:id", admin, ctl.Update)
	g.Delete("/:id", admin, ctl.Delete)
}
