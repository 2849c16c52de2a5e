package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	sectionCtl "disiplinku_backend/internals/features/academics/sections/controller"
	helper "disiplinku_backend/internals/helpers"
	authMiddleware "disiplinku_backend/internals/middlewares/auth"
)

func SectionRoutes(api fiber.Router, db *gorm.DB) {
	ctl := sectionCtl.NewSectionController(db, helper.Validator())
	admin := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("section"), constants.AdminOnly)

	api.Get("/grades/:id/sections", ctl.GetByGrade)

	g := api.Group("/sections")
	g.Post("/", admin, ctl.Create)
	g.Patch("/:id", admin, ctl.Update)
	g.Delete("/:id", admin, ctl.Delete)
}
