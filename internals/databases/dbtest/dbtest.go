// Package dbtest menyiapkan database SQLite in-memory (GORM) untuk test.
package dbtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "disiplinku_backend/internals/databases"
	ayModel "disiplinku_backend/internals/features/academics/academic_years/model"
	gradeModel "disiplinku_backend/internals/features/academics/grades/model"
	sectionModel "disiplinku_backend/internals/features/academics/sections/model"
	atModel "disiplinku_backend/internals/features/discipline/action_types/model"
	actionModel "disiplinku_backend/internals/features/discipline/disciplinary_actions/model"
	vtModel "disiplinku_backend/internals/features/discipline/violation_types/model"
	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
	userModel "disiplinku_backend/internals/features/users/users/model"
)

// Open membuka database baru yang sudah dimigrasi. Satu koneksi saja supaya
// in-memory DB tidak hilang dan transaksi berurutan.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Close menutup pool koneksi; query berikutnya gagal seperti saat database tidak tersedia.
func Close(t testing.TB, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

// Date: tanggal UTC tengah malam.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

/* ============================================
   Fixtures
============================================ */

type Fixture struct {
	t  testing.TB
	DB *gorm.DB
}

func NewFixture(t testing.TB, db *gorm.DB) *Fixture {
	return &Fixture{t: t, DB: db}
}

func (f *Fixture) User(id, role string) userModel.UserModel {
	f.t.Helper()
	name := "User " + id
	email := id + "@example.com"
	u := userModel.UserModel{
		UserID:           id,
		UserName:         &name,
		UserEmail:        &email,
		UserRole:         role,
		UserLastSignedIn: time.Now().UTC(),
	}
	require.NoError(f.t, f.DB.Create(&u).Error)
	return u
}

func (f *Fixture) Year(name string, active bool) ayModel.AcademicYearModel {
	f.t.Helper()
	y := ayModel.AcademicYearModel{
		AcademicYearName:      name,
		AcademicYearStartDate: Date(2024, time.September, 1),
		AcademicYearEndDate:   Date(2025, time.June, 30),
		AcademicYearIsActive:  active,
	}
	require.NoError(f.t, f.DB.Create(&y).Error)
	return y
}

func (f *Fixture) Grade(yearID uint, name string, level int) gradeModel.GradeModel {
	f.t.Helper()
	g := gradeModel.GradeModel{GradeName: name, GradeLevel: level, GradeAcademicYearID: yearID}
	require.NoError(f.t, f.DB.Create(&g).Error)
	return g
}

func (f *Fixture) Section(gradeID uint, name string) sectionModel.SectionModel {
	f.t.Helper()
	s := sectionModel.SectionModel{SectionName: name, SectionGradeID: gradeID}
	require.NoError(f.t, f.DB.Create(&s).Error)
	return s
}

// Student membuat siswa aktif di section (grade & tahun diturunkan dari section).
func (f *Fixture) Student(sec sectionModel.SectionModel, number, name string) studentModel.StudentModel {
	f.t.Helper()
	var g gradeModel.GradeModel
	require.NoError(f.t, f.DB.First(&g, "grade_id = ?", sec.SectionGradeID).Error)
	s := studentModel.StudentModel{
		StudentNumber:         number,
		StudentName:           name,
		StudentGradeID:        g.GradeID,
		StudentSectionID:      sec.SectionID,
		StudentAcademicYearID: g.GradeAcademicYearID,
		StudentIsActive:       true,
	}
	require.NoError(f.t, f.DB.Create(&s).Error)
	return s
}

func (f *Fixture) ViolationType(name, severity string, points int) vtModel.ViolationTypeModel {
	f.t.Helper()
	vt := vtModel.ViolationTypeModel{
		ViolationTypeName:     name,
		ViolationTypeSeverity: severity,
		ViolationTypePoints:   points,
		ViolationTypeIsActive: true,
	}
	require.NoError(f.t, f.DB.Create(&vt).Error)
	return vt
}

func (f *Fixture) ActionType(name, severity string) atModel.ActionTypeModel {
	f.t.Helper()
	at := atModel.ActionTypeModel{ActionTypeName: name, ActionTypeSeverity: severity, ActionTypeIsActive: true}
	require.NoError(f.t, f.DB.Create(&at).Error)
	return at
}

// Action: tindakan disiplin; documentURL kosong → tanpa dokumen.
func (f *Fixture) Action(st studentModel.StudentModel, at atModel.ActionTypeModel, documentURL string) actionModel.DisciplinaryActionModel {
	f.t.Helper()
	id := at.ActionTypeID
	a := actionModel.DisciplinaryActionModel{
		DisciplinaryActionStudentID:        st.StudentID,
		DisciplinaryActionTypeID:           &id,
		DisciplinaryActionTypeNameSnapshot: at.ActionTypeName,
		DisciplinaryActionDate:             time.Now(),
	}
	if documentURL != "" {
		a.DisciplinaryActionDocumentURL = &documentURL
	}
	require.NoError(f.t, f.DB.Create(&a).Error)
	return a
}

// Violation langsung insert (tanpa workflow) untuk data agregat.
func (f *Fixture) Violation(st studentModel.StudentModel, vt vtModel.ViolationTypeModel, at time.Time) violationModel.ViolationModel {
	f.t.Helper()
	id := vt.ViolationTypeID
	v := violationModel.ViolationModel{
		ViolationStudentID:        st.StudentID,
		ViolationTypeID:           &id,
		ViolationPoints:           vt.ViolationTypePoints,
		ViolationTypeNameSnapshot: vt.ViolationTypeName,
		ViolationSeveritySnapshot: vt.ViolationTypeSeverity,
		ViolationDate:             at,
	}
	require.NoError(f.t, f.DB.Create(&v).Error)
	return v
}
