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
	"disiplinku_backend/internals/features/students/guardian_communications/model"
	"disiplinku_backend/internals/features/students/guardian_communications/repository"
)

func TestGuardianCommunicationRepository_CreateAndList(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewGuardianCommunicationRepository(db)
	ctx := context.Background()

	admin := fx.User("admin-1", constants.RoleAdmin)
	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g.GradeID, "أ"), "S-1", "أحمد")

	for i, d := range []time.Time{
		dbtest.Date(2024, time.October, 1),
		dbtest.Date(2024, time.November, 5),
		dbtest.Date(2024, time.October, 20),
	} {
		_, err := repo.Create(ctx, &model.GuardianCommunicationModel{
			GuardianCommunicationStudentID: st.StudentID,
			GuardianCommunicationDate:      d,
			GuardianCommunicationMethod:    constants.CommMethodPhone,
			GuardianCommunicationSubject:   []string{"a", "b", "c"}[i],
			GuardianCommunicationCreatedBy: &admin.UserID,
		})
		require.NoError(t, err)
	}

	rows := repo.GetByStudent(ctx, st.StudentID)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{
		rows[0].GuardianCommunicationSubject,
		rows[1].GuardianCommunicationSubject,
		rows[2].GuardianCommunicationSubject,
	})
	require.NotNil(t, rows[0].CreatedByName)
	assert.Equal(t, "User admin-1", *rows[0].CreatedByName)

	assert.Empty(t, repo.GetByStudent(ctx, st.StudentID+100))
}

func TestGuardianCommunicationRepository_CreateUnknownStudent(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewGuardianCommunicationRepository(db)

	_, err := repo.Create(context.Background(), &model.GuardianCommunicationModel{
		GuardianCommunicationStudentID: 77,
		GuardianCommunicationDate:      dbtest.Date(2024, time.October, 1),
		GuardianCommunicationMethod:    constants.CommMethodMeeting,
		GuardianCommunicationSubject:   "x",
	})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestGuardianCommunicationRepository_Delete(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewGuardianCommunicationRepository(db)
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g.GradeID, "أ"), "S-1", "أحمد")
	id, err := repo.Create(ctx, &model.GuardianCommunicationModel{
		GuardianCommunicationStudentID: st.StudentID,
		GuardianCommunicationDate:      dbtest.Date(2024, time.October, 1),
		GuardianCommunicationMethod:    constants.CommMethodLetter,
		GuardianCommunicationSubject:   "surat panggilan",
	})
	require.NoError(t, err)

	n, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Nil(t, repo.GetByID(ctx, id))

	n, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, n)
}
