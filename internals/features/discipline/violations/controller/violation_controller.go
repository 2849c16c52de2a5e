// file: internals/features/discipline/violations/controller/violation_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/discipline/violations/dto"
	"disiplinku_backend/internals/features/discipline/violations/repository"
	"disiplinku_backend/internals/features/discipline/violations/service"
	activityService "disiplinku_backend/internals/features/home/activity_logs/service"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
	"disiplinku_backend/internals/helpers/dbtime"
)

type ViolationController struct {
	DB       *gorm.DB
	Repo     *repository.ViolationRepository
	Service  *service.ViolationService
	Validate *validator.Validate
}

func NewViolationController(db *gorm.DB, v *validator.Validate, svc *service.ViolationService) *ViolationController {
	return &ViolationController{DB: db, Repo: svc.Repo, Service: svc, Validate: v}
}

// queryDate: "YYYY-MM-DD" → awal hari; endOfDay=true → awal hari berikutnya (batas eksklusif).
func queryDate(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := dbtime.ParseDate(raw, nil)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" tidak valid")
	}
	if endOfDay && len(raw) == len(dbtime.DateLayout) {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}

// GET /api/violations?academic_year_id=&q=&grade_id=&severity=&student_id=&date_from=&date_to=
func (ctl *ViolationController) Search(c *fiber.Ctx) error {
	var (
		f   repository.ViolationFilter
		err error
	)
	if f.AcademicYearID, err = helper.QueryUint(c, "academic_year_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.GradeID, err = helper.QueryUint(c, "grade_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.StudentID, err = helper.QueryUint(c, "student_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.DateFrom, err = queryDate(c, "date_from", false); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.DateTo, err = queryDate(c, "date_to", true); err != nil {
		return helper.FromFiberError(c, err)
	}
	f.Severity = c.Query("severity")
	f.Q = c.Query("q")

	return helper.JsonList(c, "ok", ctl.Repo.Search(c.UserContext(), f))
}

// GET /api/violations/recent?limit=10
func (ctl *ViolationController) GetRecent(c *fiber.Ctx) error {
	limit := helper.QueryLimit(c, "limit", 10, 100)
	return helper.JsonList(c, "ok", ctl.Repo.GetRecent(c.UserContext(), limit))
}

// GET /api/violations/range?from=2025-01-01&to=2025-01-31 (to inklusif)
func (ctl *ViolationController) GetByDateRange(c *fiber.Ctx) error {
	from, err := queryDate(c, "from", false)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	to, err := queryDate(c, "to", true)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if from == nil || to == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "from dan to wajib diisi")
	}
	return helper.JsonList(c, "ok", ctl.Repo.GetByDateRange(c.UserContext(), *from, *to))
}

// GET /api/violations/:id
func (ctl *ViolationController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row := ctl.Repo.GetByID(c.UserContext(), id)
	if row == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Pelanggaran tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", row)
}

// GET /api/students/:id/violations
func (ctl *ViolationController) GetByStudent(c *fiber.Ctx) error {
	studentID, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", ctl.Repo.GetByStudent(c.UserContext(), studentID))
}

// GET /api/students/:id/stats
func (ctl *ViolationController) StudentStats(c *fiber.Ctx) error {
	studentID, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", ctl.Repo.StudentStats(c.UserContext(), studentID))
}

// POST /api/violations
func (ctl *ViolationController) Create(c *fiber.Ctx) error {
	var req dto.CreateViolationRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	in, err := req.ToInput(helperAuth.UserIDPtr(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	row, err := ctl.Service.Record(c.UserContext(), in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"create_violation", constants.EntityViolation, row.ViolationID,
		fiber.Map{
			"student_id": row.ViolationStudentID,
			"type":       row.ViolationTypeNameSnapshot,
			"points":     row.ViolationPoints,
		})

	return helper.JsonCreated(c, "Pelanggaran berhasil dicatat", row)
}

// PATCH /api/violations/:id
func (ctl *ViolationController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateViolationRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	fields, err := req.BuildUpdateMap()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctl.Repo.GetByID(c.UserContext(), id) == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Pelanggaran tidak ditemukan")
	}
	if _, err := ctl.Repo.Update(c.UserContext(), id, fields); err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"update_violation", constants.EntityViolation, id, fields)

	return helper.JsonUpdated(c, "Pelanggaran berhasil diperbarui", ctl.Repo.GetByID(c.UserContext(), id))
}

// DELETE /api/violations/:id
func (ctl *ViolationController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pelanggaran tidak ditemukan")
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"delete_violation", constants.EntityViolation, id, nil)

	return helper.JsonDeleted(c, "Pelanggaran berhasil dihapus", fiber.Map{"violation_id": id})
}
