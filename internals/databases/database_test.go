package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "disiplinku_backend/internals/databases"
	"disiplinku_backend/internals/databases/dbtest"
	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
	userModel "disiplinku_backend/internals/features/users/users/model"
	helper "disiplinku_backend/internals/helpers"
)

type foreignKey struct {
	Table    string `gorm:"column:table"`
	From     string `gorm:"column:from"`
	To       string `gorm:"column:to"`
	OnDelete string `gorm:"column:on_delete"`
}

func foreignKeys(t *testing.T, db *gorm.DB, table string) []foreignKey {
	t.Helper()
	var rows []foreignKey
	require.NoError(t, db.Raw("SELECT * FROM pragma_foreign_key_list(?)", table).Scan(&rows).Error)
	return rows
}

func TestMigrate_ForeignKeyDirection(t *testing.T) {
	db := dbtest.Open(t)

	assert.Empty(t, foreignKeys(t, db, "violation_types"))

	var toTypes *foreignKey
	for _, fk := range foreignKeys(t, db, "violations") {
		fk := fk
		if fk.Table == "violation_types" {
			toTypes = &fk
		}
	}
	require.NotNil(t, toTypes, "violations harus punya FK ke violation_types")
	assert.Equal(t, "violation_type_id", toTypes.From)
	assert.Equal(t, "violation_type_id", toTypes.To)
	assert.Equal(t, "SET NULL", toTypes.OnDelete)

	tables := map[string]string{
		"disciplinary_actions":    "action_types",
		"grades":                  "academic_years",
		"sections":                "grades",
		"plan_follow_ups":         "improvement_plans",
		"guardian_communications": "students",
	}
	for child, parent := range tables {
		found := false
		for _, fk := range foreignKeys(t, db, child) {
			found = found || fk.Table == parent
		}
		assert.True(t, found, "%s -> %s", child, parent)
	}
}

func TestMigrate_DeleteViolationTypeNullsReference(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)

	sec := fx.Section(fx.Grade(fx.Year("2024-2025", true).AcademicYearID, "الصف الأول", 1).GradeID, "أ")
	st := fx.Student(sec, "S-1", "أحمد")
	vt := fx.ViolationType("تأخر", "minor", 1)
	v := fx.Violation(st, vt, dbtest.Date(2024, 10, 1))

	require.NoError(t, db.Exec("DELETE FROM violation_types WHERE violation_type_id = ?", vt.ViolationTypeID).Error)

	var got violationModel.ViolationModel
	require.NoError(t, db.First(&got, "violation_id = ?", v.ViolationID).Error)
	assert.Nil(t, got.ViolationTypeID)
	assert.Equal(t, "تأخر", got.ViolationTypeNameSnapshot)
	assert.Equal(t, 1, got.ViolationPoints)
}

func TestMigrate_UserEmailUnique(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, database.Migrate(db), "migrate ulang harus aman")

	email := "siti@example.com"
	require.NoError(t, db.Create(&userModel.UserModel{UserID: "a", UserEmail: &email, UserRole: "user"}).Error)
	err := db.Create(&userModel.UserModel{UserID: "b", UserEmail: &email, UserRole: "user"}).Error
	require.Error(t, err)
	assert.True(t, helper.IsUniqueViolation(err))

	// tanpa email boleh lebih dari satu
	require.NoError(t, db.Create(&userModel.UserModel{UserID: "c", UserRole: "user"}).Error)
	require.NoError(t, db.Create(&userModel.UserModel{UserID: "d", UserRole: "user"}).Error)
}
