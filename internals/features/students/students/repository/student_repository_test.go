package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/databases/dbtest"
	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
	"disiplinku_backend/internals/features/students/students/model"
	"disiplinku_backend/internals/features/students/students/repository"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func names(rows []repository.StudentRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.StudentName)
	}
	return out
}

func TestStudentRepository_CreateThenGetByID(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewStudentRepository(db)
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")

	guardian, phone, notes := "ولي أمر أحمد", "0500000001", "يجلس في الصف الأمامي"
	in := &model.StudentModel{
		StudentNumber:        "STD20240001",
		StudentName:          "أحمد",
		StudentGradeID:       g.GradeID,
		StudentSectionID:     sec.SectionID,
		StudentGuardianName:  &guardian,
		StudentGuardianPhone: &phone,
		StudentNotes:         &notes,
		StudentIsActive:      true,
	}
	id, err := repo.Create(ctx, in)
	require.NoError(t, err)

	got := repo.GetByID(ctx, id)
	require.NotNil(t, got)
	assert.Equal(t, "STD20240001", got.StudentNumber)
	assert.Equal(t, "أحمد", got.StudentName)
	assert.Equal(t, y.AcademicYearID, got.StudentAcademicYearID)
	assert.Equal(t, guardian, *got.StudentGuardianName)
	assert.Equal(t, phone, *got.StudentGuardianPhone)
	assert.Equal(t, notes, *got.StudentNotes)
	assert.True(t, got.StudentIsActive)
	assert.Equal(t, "الصف الأول", got.GradeName)
	assert.Equal(t, "أ", got.SectionName)
	assert.Equal(t, "2024-2025", got.AcademicYearName)
	assert.False(t, got.StudentCreatedAt.IsZero())
	assert.Zero(t, got.ViolationCount)
}

func TestStudentRepository_CreateGeneratesNumber(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewStudentRepository(db)

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")

	m := &model.StudentModel{StudentName: "خالد", StudentGradeID: g.GradeID, StudentSectionID: sec.SectionID, StudentIsActive: true}
	_, err := repo.Create(context.Background(), m)
	require.NoError(t, err)
	assert.Regexp(t, `^STD\d+$`, m.StudentNumber)
}

func TestStudentRepository_CreateRejectsBadPlacementAndDuplicates(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewStudentRepository(db)
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g1 := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	g2 := fx.Grade(y.AcademicYearID, "الصف الثاني", 2)
	sec2 := fx.Section(g2.GradeID, "أ")
	sec1 := fx.Section(g1.GradeID, "أ")
	fx.Student(sec1, "S-1", "أحمد")

	_, err := repo.Create(ctx, &model.StudentModel{StudentName: "x", StudentGradeID: g1.GradeID, StudentSectionID: sec2.SectionID})
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))

	_, err = repo.Create(ctx, &model.StudentModel{StudentName: "x", StudentGradeID: 999, StudentSectionID: sec1.SectionID})
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	_, err = repo.Create(ctx, &model.StudentModel{StudentNumber: "S-1", StudentName: "x", StudentGradeID: g1.GradeID, StudentSectionID: sec1.SectionID})
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestStudentRepository_SearchFiltersAndOrder(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewStudentRepository(db)
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g1 := fx.Grade(y.AcademicYearID, "Kelas 1", 1)
	g2 := fx.Grade(y.AcademicYearID, "Kelas 2", 2)
	g1b := fx.Section(g1.GradeID, "B")
	g1a := fx.Section(g1.GradeID, "A")
	g2a := fx.Section(g2.GradeID, "A")

	fx.Student(g2a, "NIS-0001", "Ahmad Fauzi")
	fx.Student(g1b, "NIS-0002", "Budi")
	fx.Student(g1a, "NIS-0003", "Citra")
	fx.Student(g1a, "NIS-0042", "Ahmad Rizki")

	old := fx.Year("2023-2024", false)
	og := fx.Grade(old.AcademicYearID, "Kelas 1", 1)
	fx.Student(fx.Section(og.GradeID, "A"), "NIS-9999", "Ahmad Lama")

	yearID := y.AcademicYearID
	all := repo.Search(ctx, repository.StudentFilter{AcademicYearID: &yearID})
	assert.Equal(t, []string{"Ahmad Rizki", "Citra", "Budi", "Ahmad Fauzi"}, names(all))

	got := repo.Search(ctx, repository.StudentFilter{AcademicYearID: &yearID, Q: "AHMAD"})
	assert.Equal(t, []string{"Ahmad Rizki", "Ahmad Fauzi"}, names(got))

	got = repo.Search(ctx, repository.StudentFilter{AcademicYearID: &yearID, Q: "0042"})
	assert.Equal(t, []string{"Ahmad Rizki"}, names(got))

	gradeID := g2.GradeID
	got = repo.Search(ctx, repository.StudentFilter{AcademicYearID: &yearID, GradeID: &gradeID, Q: "ahmad"})
	assert.Equal(t, []string{"Ahmad Fauzi"}, names(got))

	// wildcard LIKE tidak bocor
	got = repo.Search(ctx, repository.StudentFilter{AcademicYearID: &yearID, Q: "%"})
	assert.Empty(t, got)
}

func TestStudentRepository_UpdateRevalidatesPlacement(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewStudentRepository(db)
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g1 := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	g2 := fx.Grade(y.AcademicYearID, "الصف الثاني", 2)
	s1 := fx.Section(g1.GradeID, "أ")
	s2 := fx.Section(g2.GradeID, "أ")
	st := fx.Student(s1, "S-1", "أحمد")
	fx.Student(s1, "S-2", "خالد")

	_, err := repo.Update(ctx, st.StudentID, map[string]any{"student_grade_id": g2.GradeID})
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))

	_, err = repo.Update(ctx, st.StudentID, map[string]any{"student_number": "S-2"})
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))

	n, err := repo.Update(ctx, st.StudentID, map[string]any{"student_grade_id": g2.GradeID, "student_section_id": s2.SectionID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	got := repo.GetByID(ctx, st.StudentID)
	require.NotNil(t, got)
	assert.Equal(t, g2.GradeID, got.StudentGradeID)

	_, err = repo.Update(ctx, 999, map[string]any{"student_name": "x"})
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestStudentRepository_DeleteRemovesHistory(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := repository.NewStudentRepository(db)
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	st := fx.Student(sec, "S-1", "أحمد")
	vt := fx.ViolationType("تأخر", constants.SeverityMinor, 1)
	fx.Violation(st, vt, time.Now())
	fx.Violation(st, vt, time.Now())

	row := repo.GetByID(ctx, st.StudentID)
	require.NotNil(t, row)
	assert.Equal(t, int64(2), row.ViolationCount)
	assert.Equal(t, int64(2), row.TotalPoints)

	n, err := repo.Delete(ctx, st.StudentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Nil(t, repo.GetByID(ctx, st.StudentID))

	var count int64
	require.NoError(t, db.Model(&violationModel.ViolationModel{}).Count(&count).Error)
	assert.Zero(t, count)

	n, err = repo.Delete(ctx, st.StudentID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStudentRepository_DatabaseDown(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	st := fx.Student(sec, "S-1", "أحمد")
	repo := repository.NewStudentRepository(db)
	ctx := context.Background()
	dbtest.Close(t, db)

	rows := repo.Search(ctx, repository.StudentFilter{AcademicYearID: &y.AcademicYearID})
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Nil(t, repo.GetByID(ctx, st.StudentID))
	assert.Zero(t, repo.CountByGrade(ctx, g.GradeID))

	_, err := repo.Create(ctx, &model.StudentModel{
		StudentName:      "خالد",
		StudentGradeID:   g.GradeID,
		StudentSectionID: sec.SectionID,
		StudentIsActive:  true,
	})
	assert.Error(t, err)
}

func TestStudentRepository_DeleteRemovesActionDocuments(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	store := &helperOSS.MockBlobService{}
	repo := repository.NewStudentRepository(db)
	repo.Documents = store
	ctx := context.Background()

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	st := fx.Student(sec, "S-1", "أحمد")
	other := fx.Student(sec, "S-2", "خالد")
	at := fx.ActionType("استدعاء ولي الأمر", constants.SeverityMinor)
	fx.Action(st, at, "/documents/a.pdf")
	fx.Action(st, at, "")
	fx.Action(other, at, "/documents/b.pdf")

	n, err := repo.Delete(ctx, st.StudentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, []string{"/documents/a.pdf"}, store.Deleted)

	// siswa tidak ada → tidak ada file yang disentuh
	n, err = repo.Delete(ctx, st.StudentID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, store.Deleted, 1)
}

func TestStudentRepository_DeleteIgnoresStorageFailure(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	var tried []string
	repo := repository.NewStudentRepository(db)
	repo.Documents = &helperOSS.MockBlobService{
		DeleteByPublicURLFn: func(_ context.Context, url string) error {
			tried = append(tried, url)
			return errors.New("bucket unavailable")
		},
	}

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	sec := fx.Section(g.GradeID, "أ")
	st := fx.Student(sec, "S-1", "أحمد")
	at := fx.ActionType("استدعاء ولي الأمر", constants.SeverityMinor)
	fx.Action(st, at, "/documents/a.pdf")

	n, err := repo.Delete(context.Background(), st.StudentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, []string{"/documents/a.pdf"}, tried)
	assert.Nil(t, repo.GetByID(context.Background(), st.StudentID))
}
