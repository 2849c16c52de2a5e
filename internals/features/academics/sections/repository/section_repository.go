package repository

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	gradeModel "disiplinku_backend/internals/features/academics/grades/model"
	"disiplinku_backend/internals/features/academics/sections/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
)

type SectionRow struct {
	model.SectionModel
	StudentCount int64 `gorm:"column:student_count" json:"student_count"`
}

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

func (r *SectionRepository) GetByGrade(ctx context.Context, gradeID uint) []SectionRow {
	rows := make([]SectionRow, 0)
	if err := r.DB.WithContext(ctx).
		Table("sections AS sc").
		Select("sc.*, COUNT(s.student_id) AS student_count").
		Joins("LEFT JOIN students s ON s.student_section_id = sc.section_id").
		Where("sc.section_grade_id = ?", gradeID).
		Group("sc.section_id").
		Order("sc.section_name ASC, sc.section_id ASC").
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] sections by grade %d: %v", gradeID, err)
		return []SectionRow{}
	}
	return rows
}

func (r *SectionRepository) GetByID(ctx context.Context, id uint) *model.SectionModel {
	var m model.SectionModel
	if err := r.DB.WithContext(ctx).First(&m, "section_id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] section %d: %v", id, err)
		}
		return nil
	}
	return &m
}

// Create: grade harus ada (404).
func (r *SectionRepository) Create(ctx context.Context, m *model.SectionModel) (uint, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&gradeModel.GradeModel{}).Where("grade_id = ?", m.SectionGradeID).Count(&n).Error; err != nil {
			return errors.Wrap(err, "check grade")
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		if err := tx.Create(m).Error; err != nil {
			return errors.Wrap(err, "create section")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return m.SectionID, nil
}

func (r *SectionRepository) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).Model(&model.SectionModel{}).Where("section_id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "update section")
	}
	return res.RowsAffected, nil
}

// Delete ditolak (409) selama masih ada siswa di section.
func (r *SectionRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&studentModel.StudentModel{}).Where("student_section_id = ?", id).Count(&n).Error; err != nil {
			return errors.Wrap(err, "count students of section")
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusConflict, "Section masih memiliki siswa. Pindahkan atau hapus siswa terlebih dahulu")
		}
		res := tx.Where("section_id = ?", id).Delete(&model.SectionModel{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete section")
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}
