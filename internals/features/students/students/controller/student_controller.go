// file: internals/features/students/students/controller/student_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	activityService "disiplinku_backend/internals/features/home/activity_logs/service"
	"disiplinku_backend/internals/features/students/students/dto"
	"disiplinku_backend/internals/features/students/students/repository"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

type StudentController struct {
	DB       *gorm.DB
	Repo     *repository.StudentRepository
	Validate *validator.Validate
}

// store dipakai untuk membuang dokumen tindakan milik siswa yang ikut terhapus.
func NewStudentController(db *gorm.DB, v *validator.Validate, store helperOSS.BlobService) *StudentController {
	repo := repository.NewStudentRepository(db)
	repo.Documents = store
	return &StudentController{DB: db, Repo: repo, Validate: v}
}

// GET /api/students?academic_year_id=&q=&grade_id=&section_id=&is_active=
func (ctl *StudentController) Search(c *fiber.Ctx) error {
	var (
		f   repository.StudentFilter
		err error
	)
	if f.AcademicYearID, err = helper.QueryUint(c, "academic_year_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.GradeID, err = helper.QueryUint(c, "grade_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.SectionID, err = helper.QueryUint(c, "section_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.IsActive, err = helper.QueryBool(c, "is_active"); err != nil {
		return helper.FromFiberError(c, err)
	}
	f.Q = c.Query("q")

	return helper.JsonList(c, "ok", ctl.Repo.Search(c.UserContext(), f))
}

// GET /api/students/:id
func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row := ctl.Repo.GetByID(c.UserContext(), id)
	if row == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", row)
}

// POST /api/students
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m := req.ToModel(helperAuth.UserIDPtr(c))
	id, err := ctl.Repo.Create(c.UserContext(), m)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"create_student", constants.EntityStudent, id,
		fiber.Map{"name": m.StudentName, "number": m.StudentNumber})

	return helper.JsonCreated(c, "Siswa berhasil ditambahkan", ctl.Repo.GetByID(c.UserContext(), id))
}

// PATCH /api/students/:id
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateStudentRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}

	fields := req.BuildUpdateMap()
	if len(fields) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada data yang diubah")
	}
	if _, err := ctl.Repo.Update(c.UserContext(), id, fields); err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"update_student", constants.EntityStudent, id, fields)

	return helper.JsonUpdated(c, "Siswa berhasil diperbarui", ctl.Repo.GetByID(c.UserContext(), id))
}

// DELETE /api/students/:id
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"delete_student", constants.EntityStudent, id, nil)

	return helper.JsonDeleted(c, "Siswa berhasil dihapus", fiber.Map{"student_id": id})
}
