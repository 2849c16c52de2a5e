package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	DashboardRoutes "disiplinku_backend/internals/features/reports/dashboard/route"
	reportRoute "disiplinku_backend/internals/features/reports/reports/route"
)

func ReportRoutes(api fiber.Router, db *gorm.DB) {
	DashboardRoutes.DashboardRoutes(api, db)
	reportRoute.ReportRoutes(api, db)
}
