package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/discipline/violation_types/dto"
	"disiplinku_backend/internals/features/discipline/violation_types/repository"
	activityService "disiplinku_backend/internals/features/home/activity_logs/service"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
)

type ViolationTypeController struct {
	DB       *gorm.DB
	Repo     *repository.ViolationTypeRepository
	Validate *validator.Validate
}

func NewViolationTypeController(db *gorm.DB, v *validator.Validate) *ViolationTypeController {
	return &ViolationTypeController{DB: db, Repo: repository.NewViolationTypeRepository(db), Validate: v}
}

// GET /api/violation-types
func (ctl *ViolationTypeController) GetAll(c *fiber.Ctx) error {
	return helper.JsonList(c, "ok", ctl.Repo.GetAll(c.UserContext()))
}

// GET /api/violation-types/active
func (ctl *ViolationTypeController) GetActive(c *fiber.Ctx) error {
	return helper.JsonList(c, "ok", ctl.Repo.GetActive(c.UserContext()))
}

// GET /api/violation-types/:id
func (ctl *ViolationTypeController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m := ctl.Repo.GetByID(c.UserContext(), id)
	if m == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Jenis pelanggaran tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", m)
}

// POST /api/violation-types
func (ctl *ViolationTypeController) Create(c *fiber.Ctx) error {
	var req dto.CreateViolationTypeRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m := req.ToModel(helperAuth.UserIDPtr(c))
	id, err := ctl.Repo.Create(c.UserContext(), m)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"create_violation_type", constants.EntityViolationType, id,
		fiber.Map{"name": m.ViolationTypeName, "points": m.ViolationTypePoints})

	return helper.JsonCreated(c, "Jenis pelanggaran berhasil dibuat", m)
}

// PATCH /api/violation-types/:id
func (ctl *ViolationTypeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateViolationTypeRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctl.Repo.GetByID(c.UserContext(), id) == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Jenis pelanggaran tidak ditemukan")
	}
	fields := req.BuildUpdateMap()
	if _, err := ctl.Repo.Update(c.UserContext(), id, fields); err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"update_violation_type", constants.EntityViolationType, id, fields)

	return helper.JsonUpdated(c, "Jenis pelanggaran berhasil diperbarui", ctl.Repo.GetByID(c.UserContext(), id))
}

// DELETE /api/violation-types/:id
func (ctl *ViolationTypeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Jenis pelanggaran tidak ditemukan")
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"delete_violation_type", constants.EntityViolationType, id, nil)

	return helper.JsonDeleted(c, "Jenis pelanggaran berhasil dihapus", fiber.Map{"violation_type_id": id})
}
