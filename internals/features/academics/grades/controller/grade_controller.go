package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/academics/grades/dto"
	"disiplinku_backend/internals/features/academics/grades/repository"
	activityService "disiplinku_backend/internals/features/home/activity_logs/service"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

type GradeController struct {
	DB       *gorm.DB
	Repo     *repository.GradeRepository
	Validate *validator.Validate
}

// store dipakai untuk membuang dokumen tindakan milik siswa yang ikut terhapus.
func NewGradeController(db *gorm.DB, v *validator.Validate, store helperOSS.BlobService) *GradeController {
	repo := repository.NewGradeRepository(db)
	repo.Documents = store
	return &GradeController{DB: db, Repo: repo, Validate: v}
}

// GET /api/academic-years/:id/grades
func (ctl *GradeController) GetByAcademicYear(c *fiber.Ctx) error {
	yearID, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", ctl.Repo.GetByAcademicYear(c.UserContext(), yearID))
}

// GET /api/grades/:id
func (ctl *GradeController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m := ctl.Repo.GetByID(c.UserContext(), id)
	if m == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", m)
}

// POST /api/grades
func (ctl *GradeController) Create(c *fiber.Ctx) error {
	var req dto.CreateGradeRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m := req.ToModel()
	id, err := ctl.Repo.Create(c.UserContext(), m)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"create_grade", constants.EntityGrade, id, fiber.Map{"name": m.GradeName, "level": m.GradeLevel})

	return helper.JsonCreated(c, "Kelas berhasil dibuat", m)
}

// PATCH /api/grades/:id
func (ctl *GradeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateGradeRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctl.Repo.GetByID(c.UserContext(), id) == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}

	fields := req.BuildUpdateMap()
	if _, err := ctl.Repo.Update(c.UserContext(), id, fields); err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"update_grade", constants.EntityGrade, id, fields)

	return helper.JsonUpdated(c, "Kelas berhasil diperbarui", ctl.Repo.GetByID(c.UserContext(), id))
}

// DELETE /api/grades/:id: ikut menghapus section & siswa di kelas ini.
func (ctl *GradeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"delete_grade", constants.EntityGrade, id, nil)

	return helper.JsonDeleted(c, "Kelas berhasil dihapus", fiber.Map{"grade_id": id})
}
