package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	activityCtl "disiplinku_backend/internals/features/home/activity_logs/controller"
	authMiddleware "disiplinku_backend/internals/middlewares/auth"
)

func ActivityLogAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := activityCtl.NewActivityLogController(db)

	g := api.Group("/activity-logs",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("log aktivitas"), constants.AdminOnly),
	)
	g.Get("/", ctl.List)
}
