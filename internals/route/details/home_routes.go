package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ActivityLogRoutes "disiplinku_backend/internals/features/home/activity_logs/route"
	NotificationRoutes "disiplinku_backend/internals/features/home/notifications/route"
)

// ✅ Notifikasi milik user login; activity log khusus admin
// Contoh akses: /api/notifications, /api/activity-logs
func HomeRoutes(api fiber.Router, db *gorm.DB) {
	NotificationRoutes.NotificationRoutes(api, db)
	ActivityLogRoutes.ActivityLogAdminRoutes(api, db)
}
