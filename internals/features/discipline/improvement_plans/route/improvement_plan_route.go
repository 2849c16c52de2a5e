package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	planCtl "disiplinku_backend/internals/features/discipline/improvement_plans/controller"
	helper "disiplinku_backend/internals/helpers"
)

func ImprovementPlanRoutes(api fiber.Router, db *gorm.DB) {
	ctl := planCtl.NewImprovementPlanController(db, helper.Validator())

	api.Get("/students/:id/plans", ctl.GetByStudent)

	g := api.Group("/improvement-plans")
	g.Get("/active", ctl.ListActive)
	g.Delete("/follow-ups/:id", ctl.DeleteFollowUp)
	g.Get("/:id", ctl.GetByID)
	g.Get("/:id/follow-ups", ctl.GetFollowUps)
	g.Post("/", ctl.Create)
	g.Post("/:id/follow-ups", ctl.CreateFollowUp)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
