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
	"disiplinku_backend/internals/features/academics/academic_years/model"
	"disiplinku_backend/internals/features/academics/academic_years/repository"
	gradeModel "disiplinku_backend/internals/features/academics/grades/model"
	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

func activeIDs(t *testing.T, repo *repository.AcademicYearRepository) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, repo.DB.Model(&model.AcademicYearModel{}).
		Where("academic_year_is_active = ?", true).
		Pluck("academic_year_id", &ids).Error)
	return ids
}

func TestAcademicYearRepository_SetActiveKeepsSingleActive(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewAcademicYearRepository(db)
	ctx := context.Background()

	y1 := fx.Year("2023-2024", true)
	y2 := fx.Year("2024-2025", false)
	y3 := fx.Year("2025-2026", false)

	for _, target := range []uint{y2.AcademicYearID, y3.AcademicYearID, y1.AcademicYearID, y1.AcademicYearID} {
		require.NoError(t, repo.SetActive(ctx, target))
		assert.Equal(t, []uint{target}, activeIDs(t, repo))
	}

	active := repo.GetActive(ctx)
	require.NotNil(t, active)
	assert.Equal(t, y1.AcademicYearID, active.AcademicYearID)
}

func TestAcademicYearRepository_SetActiveUnknownID(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewAcademicYearRepository(db)

	y := fx.Year("2024-2025", true)

	err := repo.SetActive(context.Background(), 9999)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	// rollback: tahun lama tetap aktif
	assert.Equal(t, []uint{y.AcademicYearID}, activeIDs(t, repo))
}

func TestAcademicYearRepository_CreateActiveDeactivatesOthers(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewAcademicYearRepository(db)

	fx.Year("2023-2024", true)
	id, err := repo.Create(context.Background(), &model.AcademicYearModel{
		AcademicYearName:      "2024-2025",
		AcademicYearStartDate: dbtest.Date(2024, time.September, 1),
		AcademicYearEndDate:   dbtest.Date(2025, time.June, 30),
		AcademicYearIsActive:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{id}, activeIDs(t, repo))
}

func TestAcademicYearRepository_GetActiveNone(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewAcademicYearRepository(db)

	assert.Nil(t, repo.GetActive(context.Background()))
	fx.Year("2024-2025", false)
	assert.Nil(t, repo.GetActive(context.Background()))
}

func TestAcademicYearRepository_GetAllNewestFirst(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewAcademicYearRepository(db)
	ctx := context.Background()

	for _, y := range []struct {
		name  string
		start time.Time
	}{
		{"2023-2024", dbtest.Date(2023, time.September, 1)},
		{"2025-2026", dbtest.Date(2025, time.September, 1)},
		{"2024-2025", dbtest.Date(2024, time.September, 1)},
	} {
		_, err := repo.Create(ctx, &model.AcademicYearModel{
			AcademicYearName:      y.name,
			AcademicYearStartDate: y.start,
			AcademicYearEndDate:   y.start.AddDate(0, 10, 0),
		})
		require.NoError(t, err)
	}

	var names []string
	for _, y := range repo.GetAll(ctx) {
		names = append(names, y.AcademicYearName)
	}
	assert.Equal(t, []string{"2025-2026", "2024-2025", "2023-2024"}, names)
}

func TestAcademicYearRepository_DeleteCascades(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewAcademicYearRepository(db)

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	st := fx.Student(sec, "S-1", "أحمد")
	vt := fx.ViolationType("تأخر", constants.SeverityMinor, 1)
	fx.Violation(st, vt, time.Now())

	other := fx.Year("2025-2026", false)
	og := fx.Grade(other.AcademicYearID, "الصف الأول", 1)

	n, err := repo.Delete(context.Background(), y.AcademicYearID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var count int64
	require.NoError(t, db.Model(&studentModel.StudentModel{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&violationModel.ViolationModel{}).Count(&count).Error)
	assert.Zero(t, count)

	var grades []gradeModel.GradeModel
	require.NoError(t, db.Find(&grades).Error)
	require.Len(t, grades, 1)
	assert.Equal(t, og.GradeID, grades[0].GradeID)
}

func TestAcademicYearRepository_DatabaseDown(t *testing.T) {
	db := dbtest.Open(t)
	y := dbtest.NewFixture(t, db).Year("2024-2025", true)
	repo := repository.NewAcademicYearRepository(db)
	ctx := context.Background()
	dbtest.Close(t, db)

	assert.Nil(t, repo.GetActive(ctx))
	assert.Nil(t, repo.GetByID(ctx, y.AcademicYearID))
	assert.Empty(t, repo.GetAll(ctx))

	assert.Error(t, repo.SetActive(ctx, y.AcademicYearID))
	_, err := repo.Create(ctx, &model.AcademicYearModel{
		AcademicYearName:      "2025-2026",
		AcademicYearStartDate: dbtest.Date(2025, time.September, 1),
		AcademicYearEndDate:   dbtest.Date(2026, time.June, 30),
	})
	assert.Error(t, err)
}

func TestAcademicYearRepository_DeleteRemovesActionDocuments(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	store := &helperOSS.MockBlobService{}
	repo := repository.NewAcademicYearRepository(db)
	repo.Documents = store

	at := fx.ActionType("استدعاء ولي الأمر", constants.SeverityMinor)
	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	fx.Action(fx.Student(fx.Section(g.GradeID, "أ"), "S-1", "أحمد"), at, "/documents/a.pdf")

	other := fx.Year("2025-2026", false)
	og := fx.Grade(other.AcademicYearID, "الصف الأول", 1)
	fx.Action(fx.Student(fx.Section(og.GradeID, "أ"), "S-2", "خالد"), at, "/documents/b.pdf")

	n, err := repo.Delete(context.Background(), y.AcademicYearID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, []string{"/documents/a.pdf"}, store.Deleted)
}
