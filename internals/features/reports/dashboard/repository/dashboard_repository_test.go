package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/databases/dbtest"
	planModel "disiplinku_backend/internals/features/discipline/improvement_plans/model"
	"disiplinku_backend/internals/features/reports/dashboard/repository"
)

func TestDashboard_SingleStudentToday(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewDashboardRepository(db)
	ctx := context.Background()
	now := time.Date(2024, 10, 15, 9, 30, 0, 0, time.UTC)

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g.GradeID, "أ"), "STD20240001", "أحمد")
	vt := fx.ViolationType("تأخر", constants.SeverityMinor, 1)
	fx.Violation(st, vt, now)

	stats := repo.GetDashboardStats(ctx, y.AcademicYearID, now)
	assert.Equal(t, int64(1), stats.TotalStudents)
	assert.Equal(t, int64(1), stats.TodayViolations)
	assert.Equal(t, int64(1), stats.MonthViolations)
	assert.Zero(t, stats.ActivePlans)

	top := repo.GetTopViolators(ctx, y.AcademicYearID, 10)
	require.Len(t, top, 1)
	assert.Equal(t, "أحمد", top[0].StudentName)
	assert.Equal(t, "الصف الأول", top[0].GradeName)
	assert.Equal(t, int64(1), top[0].ViolationCount)
	assert.Equal(t, int64(1), top[0].TotalPoints)
}

func TestDashboard_StatsWindowsAndYearScope(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewDashboardRepository(db)
	ctx := context.Background()
	now := time.Date(2024, 10, 15, 9, 30, 0, 0, time.UTC)

	y := fx.Year("2024-2025", true)
	old := fx.Year("2023-2024", false)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	oldG := fx.Grade(old.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	ahmad := fx.Student(sec, "S-1", "أحمد")
	fx.Student(sec, "S-2", "عمر")
	alumni := fx.Student(fx.Section(oldG.GradeID, "أ"), "S-0", "خالد")
	vt := fx.ViolationType("تأخر", constants.SeverityMinor, 1)

	fx.Violation(ahmad, vt, now.Add(-time.Hour))
	fx.Violation(ahmad, vt, dbtest.Date(2024, 10, 2))
	fx.Violation(ahmad, vt, dbtest.Date(2024, 9, 30))
	fx.Violation(alumni, vt, now)

	require.NoError(t, db.Create(&planModel.ImprovementPlanModel{
		ImprovementPlanStudentID: ahmad.StudentID,
		ImprovementPlanTitle:     "الانضباط في الحضور",
		ImprovementPlanStartDate: dbtest.Date(2024, 10, 1),
		ImprovementPlanEndDate:   dbtest.Date(2024, 11, 1),
		ImprovementPlanStatus:    constants.PlanStatusActive,
	}).Error)

	stats := repo.GetDashboardStats(ctx, y.AcademicYearID, now)
	assert.Equal(t, repository.DashboardStats{
		TotalStudents:   2,
		TodayViolations: 1,
		MonthViolations: 2,
		ActivePlans:     1,
	}, stats)

	assert.Equal(t, repository.DashboardStats{}, repo.GetDashboardStats(ctx, 999, now))
}

func TestDashboard_TopViolatorsTieBreak(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewDashboardRepository(db)
	ctx := context.Background()
	day := dbtest.Date(2024, 10, 1)

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	a := fx.Student(sec, "S-1", "Budi")
	b := fx.Student(sec, "S-2", "Ali")
	c := fx.Student(sec, "S-3", "Citra")
	fx.Student(sec, "S-4", "Dewi")
	minor := fx.ViolationType("تأخر", constants.SeverityMinor, 1)
	severe := fx.ViolationType("ارتكاب السرقة", constants.SeveritySevere, 10)

	fx.Violation(a, minor, day)
	fx.Violation(a, minor, day)
	fx.Violation(b, minor, day)
	fx.Violation(b, minor, day)
	fx.Violation(c, severe, day)

	top := repo.GetTopViolators(ctx, y.AcademicYearID, 0)
	require.Len(t, top, 3)
	assert.Equal(t, "Ali", top[0].StudentName)
	assert.Equal(t, "Budi", top[1].StudentName)
	assert.Equal(t, "Citra", top[2].StudentName)
	assert.Equal(t, int64(10), top[2].TotalPoints)

	assert.Len(t, repo.GetTopViolators(ctx, y.AcademicYearID, 1), 1)

	common := repo.GetMostCommonViolations(ctx, y.AcademicYearID)
	require.Len(t, common, 2)
	assert.Equal(t, "تأخر", common[0].TypeName)
	assert.Equal(t, int64(4), common[0].Count)
	assert.Equal(t, constants.SeveritySevere, common[1].Severity)
}

func TestDashboard_ByGradeIncludesEmptyGrades(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewDashboardRepository(db)
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g2 := fx.Grade(y.AcademicYearID, "الصف الثاني", 2)
	g1 := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g2.GradeID, "أ"), "S-1", "أحمد")
	fx.Violation(st, fx.ViolationType("تأخر", constants.SeverityMinor, 2), dbtest.Date(2024, 10, 1))

	rows := repo.GetViolationsByGrade(ctx, y.AcademicYearID)
	require.Len(t, rows, 2)
	assert.Equal(t, g1.GradeID, rows[0].GradeID)
	assert.Zero(t, rows[0].ViolationCount)
	assert.Equal(t, g2.GradeID, rows[1].GradeID)
	assert.Equal(t, int64(1), rows[1].ViolationCount)
	assert.Equal(t, int64(2), rows[1].TotalPoints)
}

func TestDashboard_DatabaseDown(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	y := fx.Year("2024-2025", true)
	st := fx.Student(fx.Section(fx.Grade(y.AcademicYearID, "الصف الأول", 1).GradeID, "أ"), "S-1", "أحمد")
	now := time.Date(2024, 10, 15, 9, 30, 0, 0, time.UTC)
	fx.Violation(st, fx.ViolationType("تأخر", constants.SeverityMinor, 1), now)
	repo := repository.NewDashboardRepository(db)
	ctx := context.Background()
	dbtest.Close(t, db)

	assert.Equal(t, repository.DashboardStats{}, repo.GetDashboardStats(ctx, y.AcademicYearID, now))

	top := repo.GetTopViolators(ctx, y.AcademicYearID, 10)
	assert.NotNil(t, top)
	assert.Empty(t, top)
	assert.Empty(t, repo.GetMostCommonViolations(ctx, y.AcademicYearID))
	assert.Empty(t, repo.GetViolationsByGrade(ctx, y.AcademicYearID))
}
