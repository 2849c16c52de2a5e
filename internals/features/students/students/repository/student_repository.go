// file: internals/features/students/students/repository/student_repository.go
package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	gradeModel "disiplinku_backend/internals/features/academics/grades/model"
	sectionModel "disiplinku_backend/internals/features/academics/sections/model"
	"disiplinku_backend/internals/features/students/students/model"
	helper "disiplinku_backend/internals/helpers"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

/* =======================================================
   ROWS & FILTER
   ======================================================= */

// StudentRow: siswa + info kelas + akumulasi pelanggaran (0 kalau belum ada).
type StudentRow struct {
	model.StudentModel
	GradeName        string `gorm:"column:grade_name" json:"grade_name"`
	GradeLevel       int    `gorm:"column:grade_level" json:"grade_level"`
	SectionName      string `gorm:"column:section_name" json:"section_name"`
	AcademicYearName string `gorm:"column:academic_year_name" json:"academic_year_name"`
	ViolationCount   int64  `gorm:"column:violation_count" json:"violation_count"`
	TotalPoints      int64  `gorm:"column:total_points" json:"total_points"`
}

// StudentFilter: semua opsional, digabung dengan AND.
type StudentFilter struct {
	AcademicYearID *uint
	GradeID        *uint
	SectionID      *uint
	Q              string
	IsActive       *bool
}

type StudentRepository struct {
	DB *gorm.DB
	// Documents: storage dokumen tindakan; nil → file tidak dibersihkan.
	Documents helperOSS.BlobService
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) base(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("students AS s").
		Select(`s.*, g.grade_name, g.grade_level, sc.section_name, ay.academic_year_name,
			COALESCE(v.violation_count, 0) AS violation_count,
			COALESCE(v.total_points, 0) AS total_points`).
		Joins("LEFT JOIN grades g ON g.grade_id = s.student_grade_id").
		Joins("LEFT JOIN sections sc ON sc.section_id = s.student_section_id").
		Joins("LEFT JOIN academic_years ay ON ay.academic_year_id = s.student_academic_year_id").
		Joins(`LEFT JOIN (
			SELECT violation_student_id, COUNT(*) AS violation_count, SUM(violation_points) AS total_points
			FROM violations GROUP BY violation_student_id
		) v ON v.violation_student_id = s.student_id`)
}

// Search: urut tingkat kelas → nama section → nama siswa → id.
func (r *StudentRepository) Search(ctx context.Context, f StudentFilter) []StudentRow {
	q := r.base(ctx)
	if f.AcademicYearID != nil {
		q = q.Where("s.student_academic_year_id = ?", *f.AcademicYearID)
	}
	if f.GradeID != nil {
		q = q.Where("s.student_grade_id = ?", *f.GradeID)
	}
	if f.SectionID != nil {
		q = q.Where("s.student_section_id = ?", *f.SectionID)
	}
	if f.IsActive != nil {
		q = q.Where("s.student_is_active = ?", *f.IsActive)
	}
	if term := strings.TrimSpace(f.Q); term != "" {
		like := helper.LikePattern(term)
		q = q.Where("(LOWER(s.student_name) LIKE ? "+helper.LikeEscape+" OR LOWER(s.student_number) LIKE ? "+helper.LikeEscape+")", like, like)
	}

	rows := make([]StudentRow, 0)
	if err := q.
		Order("g.grade_level ASC, sc.section_name ASC, s.student_name ASC, s.student_id ASC").
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] search students: %v", err)
		return []StudentRow{}
	}
	return rows
}

func (r *StudentRepository) GetByAcademicYear(ctx context.Context, yearID uint) []StudentRow {
	return r.Search(ctx, StudentFilter{AcademicYearID: &yearID})
}

func (r *StudentRepository) GetByID(ctx context.Context, id uint) *StudentRow {
	var row StudentRow
	if err := r.base(ctx).Where("s.student_id = ?", id).Limit(1).Scan(&row).Error; err != nil {
		log.Printf("[WARN] student %d: %v", id, err)
		return nil
	}
	if row.StudentID == 0 {
		return nil
	}
	return &row
}

func (r *StudentRepository) CountByGrade(ctx context.Context, gradeID uint) int64 {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&model.StudentModel{}).
		Where("student_grade_id = ?", gradeID).Count(&n).Error; err != nil {
		log.Printf("[WARN] count students grade %d: %v", gradeID, err)
		return 0
	}
	return n
}

func (r *StudentRepository) CountBySection(ctx context.Context, sectionID uint) int64 {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&model.StudentModel{}).
		Where("student_section_id = ?", sectionID).Count(&n).Error; err != nil {
		log.Printf("[WARN] count students section %d: %v", sectionID, err)
		return 0
	}
	return n
}

/* =======================================================
   WRITES
   ======================================================= */

// Create: validasi penempatan, generate nomor induk kalau kosong, cek unik.
func (r *StudentRepository) Create(ctx context.Context, m *model.StudentModel) (uint, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		yearID, err := resolvePlacement(tx, m.StudentGradeID, m.StudentSectionID, m.StudentAcademicYearID)
		if err != nil {
			return err
		}
		m.StudentAcademicYearID = yearID

		if m.StudentNumber == "" {
			num, err := nextStudentNumber(tx)
			if err != nil {
				return err
			}
			m.StudentNumber = num
		} else if err := ensureNumberFree(tx, m.StudentNumber, 0); err != nil {
			return err
		}

		if err := tx.Create(m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Nomor induk siswa sudah digunakan")
			}
			return errors.Wrap(err, "create student")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return m.StudentID, nil
}

// Update: kalau grade/section/tahun ikut berubah, penempatan gabungan divalidasi ulang.
func (r *StudentRepository) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.StudentModel
		if err := tx.First(&cur, "student_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
			}
			return errors.Wrap(err, "load student")
		}

		_, gOK := fields["student_grade_id"]
		_, sOK := fields["student_section_id"]
		_, yOK := fields["student_academic_year_id"]
		if gOK || sOK || yOK {
			gradeID := uintField(fields, "student_grade_id", cur.StudentGradeID)
			sectionID := uintField(fields, "student_section_id", cur.StudentSectionID)
			yearID := uintField(fields, "student_academic_year_id", 0)
			resolved, err := resolvePlacement(tx, gradeID, sectionID, yearID)
			if err != nil {
				return err
			}
			fields["student_academic_year_id"] = resolved
		}

		if num, ok := fields["student_number"].(string); ok && num != cur.StudentNumber {
			if err := ensureNumberFree(tx, num, id); err != nil {
				return err
			}
		}

		res := tx.Model(&model.StudentModel{}).Where("student_id = ?", id).Updates(fields)
		if res.Error != nil {
			if helper.IsUniqueViolation(res.Error) {
				return fiber.NewError(fiber.StatusConflict, "Nomor induk siswa sudah digunakan")
			}
			return errors.Wrap(res.Error, "update student")
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

// Delete: siswa + seluruh riwayat disiplinnya.
func (r *StudentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var (
		affected int64
		docs     []string
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.StudentModel{}).Where("student_id = ?", id).Count(&n).Error; err != nil {
			return errors.Wrap(err, "check student")
		}
		if n == 0 {
			return nil
		}
		var err error
		if docs, err = DeleteStudentsTx(tx, []uint{id}); err != nil {
			return err
		}
		affected = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	RemoveDocuments(ctx, r.Documents, docs)
	return affected, nil
}

/* =======================================================
   PLACEMENT & NUMBER
   ======================================================= */

// resolvePlacement memastikan section ∈ grade dan grade ∈ tahun ajaran.
// yearID 0 → diambil dari grade.
func resolvePlacement(tx *gorm.DB, gradeID, sectionID, yearID uint) (uint, error) {
	var g gradeModel.GradeModel
	if err := tx.First(&g, "grade_id = ?", gradeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fiber.NewError(fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return 0, errors.Wrap(err, "load grade")
	}
	var sc sectionModel.SectionModel
	if err := tx.First(&sc, "section_id = ?", sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fiber.NewError(fiber.StatusNotFound, "Section tidak ditemukan")
		}
		return 0, errors.Wrap(err, "load section")
	}
	if sc.SectionGradeID != g.GradeID {
		return 0, fiber.NewError(fiber.StatusUnprocessableEntity, "Section tidak termasuk dalam kelas yang dipilih")
	}
	if yearID != 0 && yearID != g.GradeAcademicYearID {
		return 0, fiber.NewError(fiber.StatusUnprocessableEntity, "Kelas tidak termasuk dalam tahun ajaran yang dipilih")
	}
	return g.GradeAcademicYearID, nil
}

func ensureNumberFree(tx *gorm.DB, number string, exceptID uint) error {
	var n int64
	q := tx.Model(&model.StudentModel{}).Where("student_number = ?", number)
	if exceptID != 0 {
		q = q.Where("student_id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return errors.Wrap(err, "check student number")
	}
	if n > 0 {
		return fiber.NewError(fiber.StatusConflict, "Nomor induk siswa sudah digunakan")
	}
	return nil
}

// nextStudentNumber: "STD" + unix millis; naik 1 kalau sudah terpakai.
func nextStudentNumber(tx *gorm.DB) (string, error) {
	ms := time.Now().UnixMilli()
	for i := 0; i < 100; i++ {
		num := fmt.Sprintf("STD%d", ms+int64(i))
		var n int64
		if err := tx.Model(&model.StudentModel{}).Where("student_number = ?", num).Count(&n).Error; err != nil {
			return "", errors.Wrap(err, "check student number")
		}
		if n == 0 {
			return num, nil
		}
	}
	return "", fiber.NewError(fiber.StatusConflict, "Gagal membuat nomor induk siswa")
}

func uintField(fields map[string]any, key string, def uint) uint {
	switch v := fields[key].(type) {
	case uint:
		return v
	case *uint:
		if v != nil {
			return *v
		}
	case int:
		return uint(v)
	case int64:
		return uint(v)
	}
	return def
}
