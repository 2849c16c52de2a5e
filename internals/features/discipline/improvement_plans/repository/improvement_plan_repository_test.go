package repository_test

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/databases/dbtest"
	"disiplinku_backend/internals/features/discipline/improvement_plans/model"
	"disiplinku_backend/internals/features/discipline/improvement_plans/repository"
)

func newPlan(studentID uint, title string, endDay int) *model.ImprovementPlanModel {
	return &model.ImprovementPlanModel{
		ImprovementPlanStudentID: studentID,
		ImprovementPlanTitle:     title,
		ImprovementPlanStartDate: dbtest.Date(2024, 10, 1),
		ImprovementPlanEndDate:   dbtest.Date(2024, 11, endDay),
		ImprovementPlanStatus:    constants.PlanStatusActive,
	}
}

func TestImprovementPlanRepository_ActiveOrderedByDeadline(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewImprovementPlanRepository(db)
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	ahmad := fx.Student(sec, "S-1", "أحمد")
	omar := fx.Student(sec, "S-2", "عمر")

	late, err := repo.Create(ctx, newPlan(ahmad.StudentID, "الانضباط في الحضور", 30))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newPlan(omar.StudentID, "احترام المعلمين", 10))
	require.NoError(t, err)
	done, err := repo.Create(ctx, newPlan(omar.StudentID, "ترتيب الزي", 5))
	require.NoError(t, err)
	_, err = repo.Update(ctx, done, map[string]any{"improvement_plan_status": constants.PlanStatusCompleted})
	require.NoError(t, err)

	active := repo.GetActive(ctx, nil)
	require.Len(t, active, 2)
	assert.Equal(t, "احترام المعلمين", active[0].ImprovementPlanTitle)
	assert.Equal(t, "عمر", active[0].StudentName)
	assert.Equal(t, late, active[1].ImprovementPlanID)
	assert.Equal(t, "الصف الأول", active[1].GradeName)
	assert.Equal(t, "أ", active[1].SectionName)

	other := uint(999)
	assert.Empty(t, repo.GetActive(ctx, &other))
	assert.Len(t, repo.GetActive(ctx, &y.AcademicYearID), 2)
	assert.Len(t, repo.GetByStudent(ctx, omar.StudentID), 2)
}

func TestImprovementPlanRepository_FollowUps(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewImprovementPlanRepository(db)
	ctx := context.Background()

	admin := fx.User("admin-1", constants.RoleAdmin)
	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g.GradeID, "أ"), "S-1", "أحمد")

	planID, err := repo.Create(ctx, newPlan(st.StudentID, "الانضباط في الحضور", 30))
	require.NoError(t, err)

	rating := 4
	for day, notes := range map[int]string{3: "تحسن ملحوظ", 10: "التزام كامل"} {
		_, err := repo.CreateFollowUp(ctx, &model.PlanFollowUpModel{
			PlanFollowUpPlanID:    planID,
			PlanFollowUpDate:      dbtest.Date(2024, 10, day),
			PlanFollowUpNotes:     notes,
			PlanFollowUpRating:    &rating,
			PlanFollowUpCreatedBy: &admin.UserID,
		})
		require.NoError(t, err)
	}

	ups := repo.GetFollowUps(ctx, planID)
	require.Len(t, ups, 2)
	assert.Equal(t, "التزام كامل", ups[0].PlanFollowUpNotes)
	require.NotNil(t, ups[0].CreatedByName)
	assert.Equal(t, "User admin-1", *ups[0].CreatedByName)

	row := repo.GetByID(ctx, planID)
	require.NotNil(t, row)
	assert.Equal(t, int64(2), row.FollowUpCount)

	var fe *fiber.Error
	_, err = repo.CreateFollowUp(ctx, &model.PlanFollowUpModel{PlanFollowUpPlanID: 999, PlanFollowUpDate: dbtest.Date(2024, 10, 3), PlanFollowUpNotes: "x"})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	n, err := repo.DeleteFollowUp(ctx, ups[1].PlanFollowUpID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Len(t, repo.GetFollowUps(ctx, planID), 1)

	n, err = repo.Delete(ctx, planID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Nil(t, repo.GetByID(ctx, planID))

	var left int64
	require.NoError(t, db.Model(&model.PlanFollowUpModel{}).Count(&left).Error)
	assert.Zero(t, left)
}

func TestImprovementPlanRepository_CreateValidation(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewImprovementPlanRepository(db)
	ctx := context.Background()

	var fe *fiber.Error
	_, err := repo.Create(ctx, newPlan(999, "x", 30))
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g.GradeID, "أ"), "S-1", "أحمد")

	bad := newPlan(st.StudentID, "x", 1)
	bad.ImprovementPlanStartDate = dbtest.Date(2024, 12, 1)
	_, err = repo.Create(ctx, bad)
	require.Error(t, err)
	assert.Empty(t, repo.GetByStudent(ctx, st.StudentID))
}
