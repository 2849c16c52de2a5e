package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/databases/dbtest"
	"disiplinku_backend/internals/features/academics/grades/model"
	"disiplinku_backend/internals/features/academics/grades/repository"
	sectionModel "disiplinku_backend/internals/features/academics/sections/model"
	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

func TestGradeRepository_GetByAcademicYear(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewGradeRepository(db)

	y := fx.Year("2024-2025", true)
	g2 := fx.Grade(y.AcademicYearID, "الصف الثاني", 2)
	g1 := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g1.GradeID, "أ")
	fx.Student(sec, "S-1", "أحمد")
	fx.Student(sec, "S-2", "خالد")

	other := fx.Year("2025-2026", false)
	fx.Grade(other.AcademicYearID, "الصف الأول", 1)

	rows := repo.GetByAcademicYear(context.Background(), y.AcademicYearID)
	require.Len(t, rows, 2)
	assert.Equal(t, g1.GradeID, rows[0].GradeID)
	assert.Equal(t, int64(2), rows[0].StudentCount)
	assert.Equal(t, g2.GradeID, rows[1].GradeID)
	assert.Zero(t, rows[1].StudentCount)
}

func TestGradeRepository_CreateRequiresYear(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewGradeRepository(db)

	_, err := repo.Create(context.Background(), &model.GradeModel{
		GradeName:           "الصف الأول",
		GradeLevel:          1,
		GradeAcademicYearID: 42,
	})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestGradeRepository_DeleteCascadesStudentsAndSections(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewGradeRepository(db)

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	st := fx.Student(sec, "S-1", "أحمد")
	vt := fx.ViolationType("تأخر", constants.SeverityMinor, 1)
	fx.Violation(st, vt, time.Now())

	keep := fx.Grade(y.AcademicYearID, "الصف الثاني", 2)
	keepSec := fx.Section(keep.GradeID, "أ")
	kept := fx.Student(keepSec, "S-2", "خالد")
	fx.Violation(kept, vt, time.Now())

	n, err := repo.Delete(context.Background(), g.GradeID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var students []studentModel.StudentModel
	require.NoError(t, db.Find(&students).Error)
	require.Len(t, students, 1)
	assert.Equal(t, kept.StudentID, students[0].StudentID)

	var sections, violations int64
	require.NoError(t, db.Model(&sectionModel.SectionModel{}).Count(&sections).Error)
	require.NoError(t, db.Model(&violationModel.ViolationModel{}).Count(&violations).Error)
	assert.Equal(t, int64(1), sections)
	assert.Equal(t, int64(1), violations)

	n, err = repo.Delete(context.Background(), g.GradeID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGradeRepository_DeleteRemovesActionDocuments(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	store := &helperOSS.MockBlobService{}
	repo := repository.NewGradeRepository(db)
	repo.Documents = store

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	at := fx.ActionType("استدعاء ولي الأمر", constants.SeverityMinor)
	fx.Action(fx.Student(sec, "S-1", "أحمد"), at, "/documents/a.pdf")
	fx.Action(fx.Student(sec, "S-2", "علي"), at, "/documents/b.pdf")

	keep := fx.Grade(y.AcademicYearID, "الصف الثاني", 2)
	fx.Action(fx.Student(fx.Section(keep.GradeID, "أ"), "S-3", "خالد"), at, "/documents/c.pdf")

	n, err := repo.Delete(context.Background(), g.GradeID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.ElementsMatch(t, []string{"/documents/a.pdf", "/documents/b.pdf"}, store.Deleted)
}
