// file: internals/features/reports/reports/controller/report_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/features/reports/reports/repository"
	helper "disiplinku_backend/internals/helpers"
)

type ReportController struct {
	DB   *gorm.DB
	Repo *repository.ReportRepository
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Repo: repository.NewReportRepository(db)}
}

// GET /api/reports/students/:id
func (ctl *ReportController) Student(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rep := ctl.Repo.StudentReport(c.UserContext(), id)
	if rep == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", rep)
}

// GET /api/reports/grades/:id
func (ctl *ReportController) Grade(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rep := ctl.Repo.GradeReport(c.UserContext(), id)
	if rep == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", rep)
}

// GET /api/reports/school?academic_year_id= (default: tahun ajaran aktif)
func (ctl *ReportController) School(c *fiber.Ctx) error {
	yearID, err := helper.QueryUint(c, "academic_year_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if yearID == nil {
		active := ctl.Repo.Years.GetActive(c.UserContext())
		if active == nil {
			return helper.JsonError(c, fiber.StatusNotFound, "Belum ada tahun ajaran aktif")
		}
		yearID = &active.AcademicYearID
	}
	rep := ctl.Repo.SchoolReport(c.UserContext(), *yearID)
	if rep == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", rep)
}
