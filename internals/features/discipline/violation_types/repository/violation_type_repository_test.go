package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/databases/dbtest"
	"disiplinku_backend/internals/features/discipline/violation_types/model"
	"disiplinku_backend/internals/features/discipline/violation_types/repository"
	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
)

func TestViolationTypeRepository_OrderedBySeverityThenPoints(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewViolationTypeRepository(db)
	ctx := context.Background()

	fx.ViolationType("ارتكاب السرقة", constants.SeveritySevere, 10)
	fx.ViolationType("تأخر", constants.SeverityMinor, 2)
	fx.ViolationType("الغياب", constants.SeverityMinor, 1)
	off := fx.ViolationType("الهروب من الحصص", constants.SeverityModerate, 5)

	names := func(rows []model.ViolationTypeModel) []string {
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.ViolationTypeName)
		}
		return out
	}
	assert.Equal(t, []string{"الغياب", "تأخر", "الهروب من الحصص", "ارتكاب السرقة"}, names(repo.GetAll(ctx)))

	n, err := repo.Update(ctx, off.ViolationTypeID, map[string]any{"violation_type_is_active": false})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, []string{"الغياب", "تأخر", "ارتكاب السرقة"}, names(repo.GetActive(ctx)))
	assert.Len(t, repo.GetAll(ctx), 4)
}

func TestViolationTypeRepository_DeleteDetachesViolations(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewViolationTypeRepository(db)
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g.GradeID, "أ"), "S-1", "أحمد")
	vt := fx.ViolationType("تأخر", constants.SeverityMinor, 1)
	v := fx.Violation(st, vt, time.Now())

	n, err := repo.Delete(ctx, vt.ViolationTypeID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Nil(t, repo.GetByID(ctx, vt.ViolationTypeID))

	var got violationModel.ViolationModel
	require.NoError(t, db.First(&got, "violation_id = ?", v.ViolationID).Error)
	assert.Nil(t, got.ViolationTypeID)
	assert.Equal(t, "تأخر", got.ViolationTypeNameSnapshot)
	assert.Equal(t, 1, got.ViolationPoints)
}

func TestViolationTypeRepository_UpdateWithoutFieldsIsNoop(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewViolationTypeRepository(db)

	n, err := repo.Update(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
