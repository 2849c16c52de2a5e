package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/discipline/action_types/dto"
	"disiplinku_backend/internals/features/discipline/action_types/repository"
	activityService "disiplinku_backend/internals/features/home/activity_logs/service"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
)

type ActionTypeController struct {
	DB       *gorm.DB
	Repo     *repository.ActionTypeRepository
	Validate *validator.Validate
}

func NewActionTypeController(db *gorm.DB, v *validator.Validate) *ActionTypeController {
	return &ActionTypeController{DB: db, Repo: repository.NewActionTypeRepository(db), Validate: v}
}

func (ctl *ActionTypeController) GetAll(c *fiber.Ctx) error {
	return helper.JsonList(c, "ok", ctl.Repo.GetAll(c.UserContext()))
}

func (ctl *ActionTypeController) GetActive(c *fiber.Ctx) error {
	return helper.JsonList(c, "ok", ctl.Repo.GetActive(c.UserContext()))
}

func (ctl *ActionTypeController) Create(c *fiber.Ctx) error {
	var req dto.CreateActionTypeRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m := req.ToModel()
	id, err := ctl.Repo.Create(c.UserContext(), m)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"create_action_type", constants.EntityActionType, id, fiber.Map{"name": m.ActionTypeName})

	return helper.JsonCreated(c, "Jenis tindakan berhasil dibuat", m)
}

func (ctl *ActionTypeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateActionTypeRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctl.Repo.GetByID(c.UserContext(), id) == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Jenis tindakan tidak ditemukan")
	}
	fields := req.BuildUpdateMap()
	if _, err := ctl.Repo.Update(c.UserContext(), id, fields); err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"update_action_type", constants.EntityActionType, id, fields)

	return helper.JsonUpdated(c, "Jenis tindakan berhasil diperbarui", ctl.Repo.GetByID(c.UserContext(), id))
}

func (ctl *ActionTypeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Jenis tindakan tidak ditemukan")
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"delete_action_type", constants.EntityActionType, id, nil)

	return helper.JsonDeleted(c, "Jenis tindakan berhasil dihapus", fiber.Map{"action_type_id": id})
}
