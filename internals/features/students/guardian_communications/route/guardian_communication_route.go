package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	commCtl "disiplinku_backend/internals/features/students/guardian_communications/controller"
	helper "disiplinku_backend/internals/helpers"
)

func GuardianCommunicationRoutes(api fiber.Router, db *gorm.DB) {
	ctl := commCtl.NewGuardianCommunicationController(db, helper.Validator())

	api.Get("/students/:id/communications", ctl.GetByStudent)

	g := api.Group("/guardian-communications")
	g.Post("/", ctl.Create)
	g.Delete("/:id", ctl.Delete)
}
