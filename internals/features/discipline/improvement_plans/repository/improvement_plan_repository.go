package repository

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/discipline/improvement_plans/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
)

// ImprovementPlanRow: rencana + info siswa + jumlah tindak lanjut.
type ImprovementPlanRow struct {
	model.ImprovementPlanModel
	StudentName   string `gorm:"column:student_name" json:"student_name"`
	StudentNumber string `gorm:"column:student_number" json:"student_number"`
	GradeName     string `gorm:"column:grade_name" json:"grade_name"`
	SectionName   string `gorm:"column:section_name" json:"section_name"`
	FollowUpCount int64  `gorm:"column:follow_up_count" json:"follow_up_count"`
}

type PlanFollowUpRow struct {
	model.PlanFollowUpModel
	CreatedByName *string `gorm:"column:created_by_name" json:"created_by_name,omitempty"`
}

type ImprovementPlanRepository struct {
	DB *gorm.DB
}

func NewImprovementPlanRepository(db *gorm.DB) *ImprovementPlanRepository {
	return &ImprovementPlanRepository{DB: db}
}

func (r *ImprovementPlanRepository) base(ctx context.Context) *gorm.DB {
	followUps := r.DB.Table("plan_follow_ups").
		Select("plan_follow_up_plan_id, COUNT(*) AS follow_up_count").
		Group("plan_follow_up_plan_id")

	return r.DB.WithContext(ctx).
		Table("improvement_plans AS p").
		Select(`p.*, s.student_name, s.student_number, g.grade_name, sc.section_name,
			COALESCE(f.follow_up_count, 0) AS follow_up_count`).
		Joins("JOIN students s ON s.student_id = p.improvement_plan_student_id").
		Joins("LEFT JOIN grades g ON g.grade_id = s.student_grade_id").
		Joins("LEFT JOIN sections sc ON sc.section_id = s.student_section_id").
		Joins("LEFT JOIN (?) f ON f.plan_follow_up_plan_id = p.improvement_plan_id", followUps)
}

func (r *ImprovementPlanRepository) scan(q *gorm.DB, what string) []ImprovementPlanRow {
	rows := make([]ImprovementPlanRow, 0)
	if err := q.Scan(&rows).Error; err != nil {
		log.Printf("[WARN] improvement plans %s: %v", what, err)
		return []ImprovementPlanRow{}
	}
	return rows
}

/* =======================================================
   READS
   ======================================================= */

// GetByStudent: rencana terbaru dulu.
func (r *ImprovementPlanRepository) GetByStudent(ctx context.Context, studentID uint) []ImprovementPlanRow {
	return r.scan(r.base(ctx).
		Where("p.improvement_plan_student_id = ?", studentID).
		Order("p.improvement_plan_created_at DESC, p.improvement_plan_id DESC"), "by student")
}

// GetActive: status active, yang paling dekat tenggatnya dulu. yearID opsional.
func (r *ImprovementPlanRepository) GetActive(ctx context.Context, yearID *uint) []ImprovementPlanRow {
	q := r.base(ctx).Where("p.improvement_plan_status = ?", constants.PlanStatusActive)
	if yearID != nil {
		q = q.Where("s.student_academic_year_id = ?", *yearID)
	}
	return r.scan(q.Order("p.improvement_plan_end_date ASC, p.improvement_plan_id ASC"), "active")
}

func (r *ImprovementPlanRepository) GetByID(ctx context.Context, id uint) *ImprovementPlanRow {
	rows := r.scan(r.base(ctx).Where("p.improvement_plan_id = ?", id).Limit(1), "by id")
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

// GetFollowUps: tanggal terbaru dulu.
func (r *ImprovementPlanRepository) GetFollowUps(ctx context.Context, planID uint) []PlanFollowUpRow {
	rows := make([]PlanFollowUpRow, 0)
	if err := r.DB.WithContext(ctx).
		Table("plan_follow_ups AS f").
		Select("f.*, u.user_name AS created_by_name").
		Joins("LEFT JOIN users u ON u.user_id = f.plan_follow_up_created_by").
		Where("f.plan_follow_up_plan_id = ?", planID).
		Order("f.plan_follow_up_date DESC, f.plan_follow_up_id DESC").
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] follow-ups plan %d: %v", planID, err)
		return []PlanFollowUpRow{}
	}
	return rows
}

/* =======================================================
   WRITES
   ======================================================= */

// Create: siswa harus ada (404).
func (r *ImprovementPlanRepository) Create(ctx context.Context, m *model.ImprovementPlanModel) (uint, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_id = ?", m.ImprovementPlanStudentID).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "check student")
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		if err := tx.Create(m).Error; err != nil {
			return errors.Wrap(err, "create improvement plan")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return m.ImprovementPlanID, nil
}

func (r *ImprovementPlanRepository) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).Model(&model.ImprovementPlanModel{}).
		Where("improvement_plan_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "update improvement plan")
	}
	return res.RowsAffected, nil
}

// Delete: tindak lanjut dihapus dulu.
func (r *ImprovementPlanRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_follow_up_plan_id = ?", id).Delete(&model.PlanFollowUpModel{}).Error; err != nil {
			return errors.Wrap(err, "delete follow-ups")
		}
		res := tx.Where("improvement_plan_id = ?", id).Delete(&model.ImprovementPlanModel{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete improvement plan")
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

// CreateFollowUp: rencana harus ada (404).
func (r *ImprovementPlanRepository) CreateFollowUp(ctx context.Context, m *model.PlanFollowUpModel) (uint, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.ImprovementPlanModel{}).
			Where("improvement_plan_id = ?", m.PlanFollowUpPlanID).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "check improvement plan")
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Rencana perbaikan tidak ditemukan")
		}
		if err := tx.Create(m).Error; err != nil {
			return errors.Wrap(err, "create follow-up")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return m.PlanFollowUpID, nil
}

func (r *ImprovementPlanRepository) DeleteFollowUp(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("plan_follow_up_id = ?", id).Delete(&model.PlanFollowUpModel{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "delete follow-up")
	}
	return res.RowsAffected, nil
}
