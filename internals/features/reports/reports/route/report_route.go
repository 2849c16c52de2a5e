package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportCtl "disiplinku_backend/internals/features/reports/reports/controller"
)

func ReportRoutes(api fiber.Router, db *gorm.DB) {
	ctl := reportCtl.NewReportController(db)

	g := api.Group("/reports")
	g.Get("/students/:id", ctl.Student)
	g.Get("/grades/:id", ctl.Grade)
	g.Get("/school", ctl.School)
}
