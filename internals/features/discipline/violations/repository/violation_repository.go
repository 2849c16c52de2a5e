// file: internals/features/discipline/violations/repository/violation_repository.go
package repository

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	actionModel "disiplinku_backend/internals/features/discipline/disciplinary_actions/model"
	vtModel "disiplinku_backend/internals/features/discipline/violation_types/model"
	"disiplinku_backend/internals/features/discipline/violations/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
	helper "disiplinku_backend/internals/helpers"
)

/* =======================================================
   ROWS & FILTER
   ======================================================= */

// ViolationRow: pelanggaran + siswa/kelas/section.
type ViolationRow struct {
	model.ViolationModel
	StudentName    string  `gorm:"column:student_name" json:"student_name"`
	StudentNumber  string  `gorm:"column:student_number" json:"student_number"`
	AcademicYearID uint    `gorm:"column:student_academic_year_id" json:"academic_year_id"`
	GradeID        uint    `gorm:"column:grade_id" json:"grade_id"`
	GradeName      string  `gorm:"column:grade_name" json:"grade_name"`
	GradeLevel     int     `gorm:"column:grade_level" json:"grade_level"`
	SectionName    string  `gorm:"column:section_name" json:"section_name"`
	CreatedByName  *string `gorm:"column:created_by_name" json:"created_by_name,omitempty"`
}

// ViolationFilter: semua opsional (AND). DateTo eksklusif.
type ViolationFilter struct {
	AcademicYearID *uint
	GradeID        *uint
	StudentID      *uint
	Severity       string
	Q              string
	DateFrom       *time.Time
	DateTo         *time.Time
}

// StudentViolationStats berdasarkan severity snapshot.
type StudentViolationStats struct {
	Total       int64 `gorm:"column:total" json:"total"`
	TotalPoints int64 `gorm:"column:total_points" json:"total_points"`
	Minor       int64 `gorm:"column:minor" json:"minor"`
	Moderate    int64 `gorm:"column:moderate" json:"moderate"`
	Severe      int64 `gorm:"column:severe" json:"severe"`
}

type RecordInput struct {
	StudentID   uint
	TypeID      uint
	Date        time.Time
	Location    *string
	Description *string
	CreatedBy   *string
}

type ViolationRepository struct {
	DB *gorm.DB
}

func NewViolationRepository(db *gorm.DB) *ViolationRepository {
	return &ViolationRepository{DB: db}
}

func (r *ViolationRepository) base(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("violations AS v").
		Select(`v.*, s.student_name, s.student_number, s.student_academic_year_id,
			g.grade_id, g.grade_name, g.grade_level, sc.section_name,
			u.user_name AS created_by_name`).
		Joins("JOIN students s ON s.student_id = v.violation_student_id").
		Joins("LEFT JOIN grades g ON g.grade_id = s.student_grade_id").
		Joins("LEFT JOIN sections sc ON sc.section_id = s.student_section_id").
		Joins("LEFT JOIN users u ON u.user_id = v.violation_created_by")
}

func (r *ViolationRepository) scan(q *gorm.DB, what string) []ViolationRow {
	rows := make([]ViolationRow, 0)
	if err := q.Scan(&rows).Error; err != nil {
		log.Printf("[WARN] violations %s: %v", what, err)
		return []ViolationRow{}
	}
	return rows
}

/* =======================================================
   READS
   ======================================================= */

// Search: tanggal terbaru dulu, lalu id terbaru.
func (r *ViolationRepository) Search(ctx context.Context, f ViolationFilter) []ViolationRow {
	q := r.base(ctx)
	if f.AcademicYearID != nil {
		q = q.Where("s.student_academic_year_id = ?", *f.AcademicYearID)
	}
	if f.GradeID != nil {
		q = q.Where("s.student_grade_id = ?", *f.GradeID)
	}
	if f.StudentID != nil {
		q = q.Where("v.violation_student_id = ?", *f.StudentID)
	}
	if sev := strings.ToLower(strings.TrimSpace(f.Severity)); sev != "" {
		q = q.Where("v.violation_severity_snapshot = ?", sev)
	}
	if term := strings.TrimSpace(f.Q); term != "" {
		like := helper.LikePattern(term)
		q = q.Where("(LOWER(s.student_name) LIKE ? "+helper.LikeEscape+" OR LOWER(v.violation_type_name_snapshot) LIKE ? "+helper.LikeEscape+")", like, like)
	}
	if f.DateFrom != nil {
		q = q.Where("v.violation_date >= ?", f.DateFrom.UTC())
	}
	if f.DateTo != nil {
		q = q.Where("v.violation_date < ?", f.DateTo.UTC())
	}
	return r.scan(q.Order("v.violation_date DESC, v.violation_id DESC"), "search")
}

// GetRecent: yang terakhir dicatat (created_at), default 10.
func (r *ViolationRepository) GetRecent(ctx context.Context, limit int) []ViolationRow {
	if limit <= 0 {
		limit = 10
	}
	return r.scan(r.base(ctx).
		Order("v.violation_created_at DESC, v.violation_id DESC").
		Limit(limit), "recent")
}

func (r *ViolationRepository) GetByStudent(ctx context.Context, studentID uint) []ViolationRow {
	return r.Search(ctx, ViolationFilter{StudentID: &studentID})
}

// GetByDateRange: [from, to).
func (r *ViolationRepository) GetByDateRange(ctx context.Context, from, to time.Time) []ViolationRow {
	return r.Search(ctx, ViolationFilter{DateFrom: &from, DateTo: &to})
}

func (r *ViolationRepository) GetByID(ctx context.Context, id uint) *ViolationRow {
	var row ViolationRow
	if err := r.base(ctx).Where("v.violation_id = ?", id).Limit(1).Scan(&row).Error; err != nil {
		log.Printf("[WARN] violation %d: %v", id, err)
		return nil
	}
	if row.ViolationID == 0 {
		return nil
	}
	return &row
}

func (r *ViolationRepository) StudentStats(ctx context.Context, studentID uint) StudentViolationStats {
	var st StudentViolationStats
	if err := r.DB.WithContext(ctx).
		Model(&model.ViolationModel{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(violation_points), 0) AS total_points,
			COALESCE(SUM(CASE WHEN violation_severity_snapshot = ? THEN 1 ELSE 0 END), 0) AS minor,
			COALESCE(SUM(CASE WHEN violation_severity_snapshot = ? THEN 1 ELSE 0 END), 0) AS moderate,
			COALESCE(SUM(CASE WHEN violation_severity_snapshot = ? THEN 1 ELSE 0 END), 0) AS severe`,
			constants.SeverityMinor, constants.SeverityModerate, constants.SeveritySevere).
		Where("violation_student_id = ?", studentID).
		Scan(&st).Error; err != nil {
		log.Printf("[WARN] violation stats student %d: %v", studentID, err)
		return StudentViolationStats{}
	}
	return st
}

// StudentTotalPoints: akumulasi poin siswa (siswa hanya terdaftar di satu tahun ajaran).
func (r *ViolationRepository) StudentTotalPoints(ctx context.Context, studentID uint) int64 {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&model.ViolationModel{}).
		Select("COALESCE(SUM(violation_points), 0)").
		Where("violation_student_id = ?", studentID).
		Scan(&total).Error; err != nil {
		log.Printf("[WARN] total points student %d: %v", studentID, err)
		return 0
	}
	return total
}

/* =======================================================
   WRITES
   ======================================================= */

// Record: siswa harus ada, jenis harus ada & aktif; poin/nama/severity disalin.
func (r *ViolationRepository) Record(ctx context.Context, in RecordInput) (*model.ViolationModel, error) {
	var out *model.ViolationModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st studentModel.StudentModel
		if err := tx.First(&st, "student_id = ?", in.StudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
			}
			return errors.Wrap(err, "load student")
		}

		var vt vtModel.ViolationTypeModel
		if err := tx.First(&vt, "violation_type_id = ?", in.TypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Jenis pelanggaran tidak ditemukan")
			}
			return errors.Wrap(err, "load violation type")
		}
		if !vt.ViolationTypeIsActive {
			return fiber.NewError(fiber.StatusNotFound, "Jenis pelanggaran tidak aktif")
		}

		typeID := vt.ViolationTypeID
		m := &model.ViolationModel{
			ViolationStudentID:        st.StudentID,
			ViolationTypeID:           &typeID,
			ViolationPoints:           vt.ViolationTypePoints,
			ViolationTypeNameSnapshot: vt.ViolationTypeName,
			ViolationSeveritySnapshot: vt.ViolationTypeSeverity,
			ViolationDate:             in.Date,
			ViolationLocation:         in.Location,
			ViolationDescription:      in.Description,
			ViolationCreatedBy:        in.CreatedBy,
		}
		if err := tx.Create(m).Error; err != nil {
			return errors.Wrap(err, "create violation")
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update: kolom poin & snapshot tidak pernah disentuh.
func (r *ViolationRepository) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case "violation_date", "violation_location", "violation_description":
			clean[k] = v
		}
	}
	if len(clean) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).Model(&model.ViolationModel{}).Where("violation_id = ?", id).Updates(clean)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "update violation")
	}
	return res.RowsAffected, nil
}

// Delete: tindakan yang merujuk dilepas (violation_id NULL).
func (r *ViolationRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&actionModel.DisciplinaryActionModel{}).
			Where("disciplinary_action_violation_id = ?", id).
			Update("disciplinary_action_violation_id", nil).Error; err != nil {
			return errors.Wrap(err, "detach disciplinary actions")
		}
		res := tx.Where("violation_id = ?", id).Delete(&model.ViolationModel{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete violation")
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}
