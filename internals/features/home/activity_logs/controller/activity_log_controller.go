package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/features/home/activity_logs/repository"
	helper "disiplinku_backend/internals/helpers"
)

type ActivityLogController struct {
	DB   *gorm.DB
	Repo *repository.ActivityLogRepository
}

func NewActivityLogController(db *gorm.DB) *ActivityLogController {
	return &ActivityLogController{DB: db, Repo: repository.NewActivityLogRepository(db)}
}

// GET /api/activity-logs?limit=50
// GET /api/activity-logs?entity_type=student&entity_id=1
func (ctl *ActivityLogController) List(c *fiber.Ctx) error {
	entityType := strings.TrimSpace(c.Query("entity_type"))
	if entityType != "" {
		entityID, err := helper.QueryUint(c, "entity_id")
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if entityID == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "entity_id wajib diisi bersama entity_type")
		}
		return helper.JsonList(c, "ok", ctl.Repo.GetByEntity(c.UserContext(), entityType, *entityID))
	}

	limit := helper.QueryLimit(c, "limit", 50, 500)
	return helper.JsonList(c, "ok", ctl.Repo.GetRecent(c.UserContext(), limit))
}
