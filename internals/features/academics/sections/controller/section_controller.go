package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/academics/sections/dto"
	"disiplinku_backend/internals/features/academics/sections/repository"
	activityService "disiplinku_backend/internals/features/home/activity_logs/service"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
)

type SectionController struct {
	DB       *gorm.DB
	Repo     *repository.SectionRepository
	Validate *validator.Validate
}

func NewSectionController(db *gorm.DB, v *validator.Validate) *SectionController {
	return &SectionController{DB: db, Repo: repository.NewSectionRepository(db), Validate: v}
}

// GET /api/grades/:id/sections
func (ctl *SectionController) GetByGrade(c *fiber.Ctx) error {
	gradeID, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", ctl.Repo.GetByGrade(c.UserContext(), gradeID))
}

// POST /api/sections
func (ctl *SectionController) Create(c *fiber.Ctx) error {
	var req dto.CreateSectionRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m := req.ToModel()
	id, err := ctl.Repo.Create(c.UserContext(), m)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"create_section", constants.EntitySection, id, fiber.Map{"name": m.SectionName})

	return helper.JsonCreated(c, "Section berhasil dibuat", m)
}

// PATCH /api/sections/:id
func (ctl *SectionController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateSectionRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctl.Repo.GetByID(c.UserContext(), id) == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Section tidak ditemukan")
	}
	fields := map[string]any{"section_name": req.SectionName}
	if _, err := ctl.Repo.Update(c.UserContext(), id, fields); err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"update_section", constants.EntitySection, id, fields)

	return helper.JsonUpdated(c, "Section berhasil diperbarui", ctl.Repo.GetByID(c.UserContext(), id))
}

// DELETE /api/sections/:id: 409 kalau masih ada siswa
func (ctl *SectionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Section tidak ditemukan")
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"delete_section", constants.EntitySection, id, nil)

	return helper.JsonDeleted(c, "Section berhasil dihapus", fiber.Map{"section_id": id})
}
