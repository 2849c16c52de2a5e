// file: internals/features/academics/academic_years/controller/academic_year_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/academics/academic_years/dto"
	"disiplinku_backend/internals/features/academics/academic_years/repository"
	activityService "disiplinku_backend/internals/features/home/activity_logs/service"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

type AcademicYearController struct {
	DB       *gorm.DB
	Repo     *repository.AcademicYearRepository
	Validate *validator.Validate
}

// store dipakai untuk membuang dokumen tindakan milik siswa yang ikut terhapus.
func NewAcademicYearController(db *gorm.DB, v *validator.Validate, store helperOSS.BlobService) *AcademicYearController {
	repo := repository.NewAcademicYearRepository(db)
	repo.Documents = store
	return &AcademicYearController{DB: db, Repo: repo, Validate: v}
}

// GET /api/academic-years
func (ctl *AcademicYearController) GetAll(c *fiber.Ctx) error {
	return helper.JsonList(c, "ok", ctl.Repo.GetAll(c.UserContext()))
}

// GET /api/academic-years/active: data null kalau belum ada yang aktif
func (ctl *AcademicYearController) GetActive(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", ctl.Repo.GetActive(c.UserContext()))
}

// GET /api/academic-years/:id
func (ctl *AcademicYearController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m := ctl.Repo.GetByID(c.UserContext(), id)
	if m == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", m)
}

// POST /api/academic-years
func (ctl *AcademicYearController) Create(c *fiber.Ctx) error {
	var req dto.CreateAcademicYearRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := req.ToModel(helperAuth.UserIDPtr(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := ctl.Repo.Create(c.UserContext(), m)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"create_academic_year", constants.EntityAcademicYear, id, fiber.Map{"name": m.AcademicYearName})

	return helper.JsonCreated(c, "Tahun ajaran berhasil dibuat", m)
}

// PATCH /api/academic-years/:id
func (ctl *AcademicYearController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateAcademicYearRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}

	cur := ctl.Repo.GetByID(c.UserContext(), id)
	if cur == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
	}
	fields, err := req.BuildUpdateMap(cur)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ctl.Repo.Update(c.UserContext(), id, fields); err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"update_academic_year", constants.EntityAcademicYear, id, fields)

	return helper.JsonUpdated(c, "Tahun ajaran berhasil diperbarui", ctl.Repo.GetByID(c.UserContext(), id))
}

// POST /api/academic-years/:id/activate
func (ctl *AcademicYearController) SetActive(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Repo.SetActive(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"activate_academic_year", constants.EntityAcademicYear, id, nil)

	return helper.JsonUpdated(c, "Tahun ajaran aktif berhasil diubah", ctl.Repo.GetByID(c.UserContext(), id))
}

// DELETE /api/academic-years/:id: ikut menghapus grade, section, dan siswa tahun tsb.
func (ctl *AcademicYearController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"delete_academic_year", constants.EntityAcademicYear, id, nil)

	return helper.JsonDeleted(c, "Tahun ajaran berhasil dihapus", fiber.Map{"academic_year_id": id})
}
