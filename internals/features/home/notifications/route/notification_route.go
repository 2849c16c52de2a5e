package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifCtl "disiplinku_backend/internals/features/home/notifications/controller"
	helper "disiplinku_backend/internals/helpers"
)

func NotificationRoutes(api fiber.Router, db *gorm.DB) {
	ctl := notifCtl.NewNotificationController(db, helper.Validator())

	g := api.Group("/notifications")
	g.Get("/", ctl.ListMine)
	g.Get("/unread-count", ctl.UnreadCount)
	g.Post("/", ctl.Create)
	g.Patch("/read-all", ctl.MarkAllRead)
	g.Patch("/:id/read", ctl.MarkRead)
}
