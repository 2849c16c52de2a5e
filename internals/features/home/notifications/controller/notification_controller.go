package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/features/home/notifications/dto"
	"disiplinku_backend/internals/features/home/notifications/repository"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
)

type NotificationController struct {
	DB       *gorm.DB
	Repo     *repository.NotificationRepository
	Validate *validator.Validate
}

func NewNotificationController(db *gorm.DB, v *validator.Validate) *NotificationController {
	return &NotificationController{DB: db, Repo: repository.NewNotificationRepository(db), Validate: v}
}

// GET /api/notifications?unread=true
func (ctl *NotificationController) ListMine(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	unread, err := helper.QueryBool(c, "unread")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	onlyUnread := unread != nil && *unread
	return helper.JsonList(c, "ok", ctl.Repo.GetForUser(c.UserContext(), userID, onlyUnread))
}

// GET /api/notifications/unread-count
func (ctl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"unread": ctl.Repo.UnreadCount(c.UserContext(), userID)})
}

// POST /api/notifications
func (ctl *NotificationController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateNotificationRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m := req.ToModel(userID)
	if _, err := ctl.Repo.Create(c.UserContext(), m); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Notifikasi terkirim", m)
}

// PATCH /api/notifications/:id/read
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.MarkRead(c.UserContext(), id, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notifikasi tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Notifikasi ditandai sudah dibaca", fiber.Map{"notification_id": id})
}

// PATCH /api/notifications/read-all
func (ctl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Semua notifikasi ditandai sudah dibaca", fiber.Map{"updated": n})
}
