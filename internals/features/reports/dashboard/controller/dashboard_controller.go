// file: internals/features/reports/dashboard/controller/dashboard_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearRepo "disiplinku_backend/internals/features/academics/academic_years/repository"
	"disiplinku_backend/internals/features/reports/dashboard/repository"
	helper "disiplinku_backend/internals/helpers"
)

type DashboardController struct {
	DB    *gorm.DB
	Repo  *repository.DashboardRepository
	Years *yearRepo.AcademicYearRepository
	Now   func() time.Time
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{
		DB:    db,
		Repo:  repository.NewDashboardRepository(db),
		Years: yearRepo.NewAcademicYearRepository(db),
		Now:   time.Now,
	}
}

// resolveYear: ?academic_year_id= atau tahun ajaran aktif. nil = belum ada tahun ajaran.
func (ctl *DashboardController) resolveYear(c *fiber.Ctx) (*uint, error) {
	id, err := helper.QueryUint(c, "academic_year_id")
	if err != nil {
		return nil, err
	}
	if id != nil {
		return id, nil
	}
	if y := ctl.Years.GetActive(c.UserContext()); y != nil {
		return &y.AcademicYearID, nil
	}
	return nil, nil
}

// GET /api/dashboard/stats
func (ctl *DashboardController) Stats(c *fiber.Ctx) error {
	yearID, err := ctl.resolveYear(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if yearID == nil {
		return helper.JsonOK(c, "ok", repository.DashboardStats{})
	}
	return helper.JsonOK(c, "ok", ctl.Repo.GetDashboardStats(c.UserContext(), *yearID, ctl.Now()))
}

// GET /api/dashboard/top-violators?limit=10
func (ctl *DashboardController) TopViolators(c *fiber.Ctx) error {
	yearID, err := ctl.resolveYear(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if yearID == nil {
		return helper.JsonList(c, "ok", []repository.TopViolatorRow{})
	}
	limit := helper.QueryLimit(c, "limit", repository.DefaultTopLimit, repository.MaxTopLimit)
	return helper.JsonList(c, "ok", ctl.Repo.GetTopViolators(c.UserContext(), *yearID, limit))
}

// GET /api/dashboard/most-common
func (ctl *DashboardController) MostCommon(c *fiber.Ctx) error {
	yearID, err := ctl.resolveYear(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if yearID == nil {
		return helper.JsonList(c, "ok", []repository.CommonViolationRow{})
	}
	return helper.JsonList(c, "ok", ctl.Repo.GetMostCommonViolations(c.UserContext(), *yearID))
}

// GET /api/dashboard/by-grade
func (ctl *DashboardController) ByGrade(c *fiber.Ctx) error {
	yearID, err := ctl.resolveYear(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if yearID == nil {
		return helper.JsonList(c, "ok", []repository.GradeViolationRow{})
	}
	return helper.JsonList(c, "ok", ctl.Repo.GetViolationsByGrade(c.UserContext(), *yearID))
}
