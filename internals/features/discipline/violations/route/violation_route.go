package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	violationCtl "disiplinku_backend/internals/features/discipline/violations/controller"
	"disiplinku_backend/internals/features/discipline/violations/service"
	helper "disiplinku_backend/internals/helpers"
	"disiplinku_backend/internals/services/email"
)

func ViolationRoutes(api fiber.Router, db *gorm.DB, mailer email.Service, alerts service.AlertConfig) {
	svc := service.NewViolationService(db, mailer, alerts)
	ctl := violationCtl.NewViolationController(db, helper.Validator(), svc)

	api.Get("/students/:id/violations", ctl.GetByStudent)
	api.Get("/students/:id/stats", ctl.StudentStats)

	g := api.Group("/violations")
	g.Get("/", ctl.Search)
	g.Get("/recent", ctl.GetRecent)
	g.Get("/range", ctl.GetByDateRange)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
