package repository

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	ayModel "disiplinku_backend/internals/features/academics/academic_years/model"
	"disiplinku_backend/internals/features/academics/grades/model"
	sectionModel "disiplinku_backend/internals/features/academics/sections/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
	studentRepo "disiplinku_backend/internals/features/students/students/repository"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

// GradeRow: grade + jumlah siswa (0 kalau kosong).
type GradeRow struct {
	model.GradeModel
	StudentCount int64 `gorm:"column:student_count" json:"student_count"`
}

type GradeRepository struct {
	DB        *gorm.DB
	Documents helperOSS.BlobService
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

// GetByAcademicYear: urut level lalu nama.
func (r *GradeRepository) GetByAcademicYear(ctx context.Context, yearID uint) []GradeRow {
	rows := make([]GradeRow, 0)
	if err := r.DB.WithContext(ctx).
		Table("grades AS g").
		Select("g.*, COUNT(s.student_id) AS student_count").
		Joins("LEFT JOIN students s ON s.student_grade_id = g.grade_id").
		Where("g.grade_academic_year_id = ?", yearID).
		Group("g.grade_id").
		Order("g.grade_level ASC, g.grade_name ASC, g.grade_id ASC").
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] grades by year %d: %v", yearID, err)
		return []GradeRow{}
	}
	return rows
}

func (r *GradeRepository) GetByID(ctx context.Context, id uint) *model.GradeModel {
	var m model.GradeModel
	if err := r.DB.WithContext(ctx).First(&m, "grade_id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] grade %d: %v", id, err)
		}
		return nil
	}
	return &m
}

// Create: tahun ajaran harus ada (404).
func (r *GradeRepository) Create(ctx context.Context, m *model.GradeModel) (uint, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&ayModel.AcademicYearModel{}).
			Where("academic_year_id = ?", m.GradeAcademicYearID).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "check academic year")
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
		}
		if err := tx.Create(m).Error; err != nil {
			return errors.Wrap(err, "create grade")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return m.GradeID, nil
}

func (r *GradeRepository) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).Model(&model.GradeModel{}).Where("grade_id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "update grade")
	}
	return res.RowsAffected, nil
}

// Delete: siswa grade (beserta riwayat) → section → grade.
func (r *GradeRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var (
		affected int64
		docs     []string
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var studentIDs []uint
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_grade_id = ?", id).
			Pluck("student_id", &studentIDs).Error; err != nil {
			return errors.Wrap(err, "list students of grade")
		}
		var err error
		if docs, err = studentRepo.DeleteStudentsTx(tx, studentIDs); err != nil {
			return err
		}
		if err := tx.Where("section_grade_id = ?", id).Delete(&sectionModel.SectionModel{}).Error; err != nil {
			return errors.Wrap(err, "delete sections of grade")
		}
		res := tx.Where("grade_id = ?", id).Delete(&model.GradeModel{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete grade")
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	studentRepo.RemoveDocuments(ctx, r.Documents, docs)
	return affected, nil
}
