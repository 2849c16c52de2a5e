package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardCtl "disiplinku_backend/internals/features/reports/dashboard/controller"
)

func DashboardRoutes(api fiber.Router, db *gorm.DB) {
	ctl := dashboardCtl.NewDashboardController(db)

	g := api.Group("/dashboard")
	g.Get("/stats", ctl.Stats)
	g.Get("/top-violators", ctl.TopViolators)
	g.Get("/most-common", ctl.MostCommon)
	g.Get("/by-grade", ctl.ByGrade)
}
