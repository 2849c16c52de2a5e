package repository_test

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/databases/dbtest"
	"disiplinku_backend/internals/features/discipline/disciplinary_actions/repository"
)

func TestDisciplinaryActionRepository_CreateLinkedToViolation(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewDisciplinaryActionRepository(db)
	ctx := context.Background()

	admin := fx.User("admin-1", constants.RoleAdmin)
	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	ahmad := fx.Student(sec, "S-1", "أحمد")
	vt := fx.ViolationType("تأخر", constants.SeverityMinor, 1)
	atp := fx.ActionType("تنبيه شفهي", constants.SeverityMinor)
	v := fx.Violation(ahmad, vt, dbtest.Date(2024, 10, 1))

	m, err := repo.Create(ctx, repository.CreateInput{
		StudentID:   ahmad.StudentID,
		TypeID:      atp.ActionTypeID,
		ViolationID: &v.ViolationID,
		Date:        dbtest.Date(2024, 10, 2),
		CreatedBy:   &admin.UserID,
	})
	require.NoError(t, err)
	assert.Equal(t, "تنبيه شفهي", m.DisciplinaryActionTypeNameSnapshot)

	row := repo.GetByID(ctx, m.DisciplinaryActionID)
	require.NotNil(t, row)
	require.NotNil(t, row.ViolationTypeName)
	assert.Equal(t, "تأخر", *row.ViolationTypeName)
	require.NotNil(t, row.CreatedByName)
	assert.Equal(t, "User admin-1", *row.CreatedByName)

	_, err = repo.Create(ctx, repository.CreateInput{StudentID: ahmad.StudentID, TypeID: atp.ActionTypeID, Date: dbtest.Date(2024, 10, 5)})
	require.NoError(t, err)

	list := repo.GetByStudent(ctx, ahmad.StudentID)
	require.Len(t, list, 2)
	assert.True(t, list[0].DisciplinaryActionDate.After(list[1].DisciplinaryActionDate))
}

func TestDisciplinaryActionRepository_CreateRejectsForeignViolation(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewDisciplinaryActionRepository(db)
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	ahmad := fx.Student(sec, "S-1", "أحمد")
	omar := fx.Student(sec, "S-2", "عمر")
	vt := fx.ViolationType("تأخر", constants.SeverityMinor, 1)
	atp := fx.ActionType("تنبيه شفهي", constants.SeverityMinor)
	v := fx.Violation(omar, vt, dbtest.Date(2024, 10, 1))

	var fe *fiber.Error
	_, err := repo.Create(ctx, repository.CreateInput{StudentID: ahmad.StudentID, TypeID: atp.ActionTypeID, ViolationID: &v.ViolationID, Date: dbtest.Date(2024, 10, 2)})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)

	missing := uint(999)
	_, err = repo.Create(ctx, repository.CreateInput{StudentID: ahmad.StudentID, TypeID: atp.ActionTypeID, ViolationID: &missing, Date: dbtest.Date(2024, 10, 2)})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	_, err = repo.Create(ctx, repository.CreateInput{StudentID: ahmad.StudentID, TypeID: 999, Date: dbtest.Date(2024, 10, 2)})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	_, err = repo.Create(ctx, repository.CreateInput{StudentID: 999, TypeID: atp.ActionTypeID, Date: dbtest.Date(2024, 10, 2)})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	assert.Empty(t, repo.GetByStudent(ctx, ahmad.StudentID))
}

func TestDisciplinaryActionRepository_SetDocumentURLReturnsPrevious(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewDisciplinaryActionRepository(db)
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g.GradeID, "أ"), "S-1", "أحمد")
	atp := fx.ActionType("فصل مؤقت", constants.SeveritySevere)

	m, err := repo.Create(ctx, repository.CreateInput{StudentID: st.StudentID, TypeID: atp.ActionTypeID, Date: dbtest.Date(2024, 10, 2)})
	require.NoError(t, err)

	prev, err := repo.SetDocumentURL(ctx, m.DisciplinaryActionID, "/documents/a.webp")
	require.NoError(t, err)
	assert.Nil(t, prev)

	prev, err = repo.SetDocumentURL(ctx, m.DisciplinaryActionID, "/documents/b.webp")
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "/documents/a.webp", *prev)

	var fe *fiber.Error
	_, err = repo.SetDocumentURL(ctx, 999, "/documents/c.webp")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	n, err := repo.Delete(ctx, m.DisciplinaryActionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Nil(t, repo.GetByID(ctx, m.DisciplinaryActionID))
}
