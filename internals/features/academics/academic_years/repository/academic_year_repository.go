package repository

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"disiplinku_backend/internals/features/academics/academic_years/model"
	gradeModel "disiplinku_backend/internals/features/academics/grades/model"
	sectionModel "disiplinku_backend/internals/features/academics/sections/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
	studentRepo "disiplinku_backend/internals/features/students/students/repository"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

type AcademicYearRepository struct {
	DB        *gorm.DB
	Documents helperOSS.BlobService
}

func NewAcademicYearRepository(db *gorm.DB) *AcademicYearRepository {
	return &AcademicYearRepository{DB: db}
}

// GetAll: terbaru dulu (start_date desc).
func (r *AcademicYearRepository) GetAll(ctx context.Context) []model.AcademicYearModel {
	rows := make([]model.AcademicYearModel, 0)
	if err := r.DB.WithContext(ctx).
		Order("academic_year_start_date DESC, academic_year_id DESC").
		Find(&rows).Error; err != nil {
		log.Printf("[WARN] academic years list: %v", err)
		return []model.AcademicYearModel{}
	}
	return rows
}

// GetActive: nil kalau belum ada tahun ajaran aktif.
func (r *AcademicYearRepository) GetActive(ctx context.Context) *model.AcademicYearModel {
	var m model.AcademicYearModel
	err := r.DB.WithContext(ctx).
		Where("academic_year_is_active = ?", true).
		Order("academic_year_id DESC").
		Limit(1).
		Find(&m).Error
	if err != nil {
		log.Printf("[WARN] academic year active: %v", err)
		return nil
	}
	if m.AcademicYearID == 0 {
		return nil
	}
	return &m
}

func (r *AcademicYearRepository) GetByID(ctx context.Context, id uint) *model.AcademicYearModel {
	var m model.AcademicYearModel
	if err := r.DB.WithContext(ctx).First(&m, "academic_year_id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] academic year %d: %v", id, err)
		}
		return nil
	}
	return &m
}

// Create: kalau is_active=true, tahun lain dinonaktifkan dalam transaksi yang sama.
func (r *AcademicYearRepository) Create(ctx context.Context, m *model.AcademicYearModel) (uint, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.AcademicYearIsActive {
			if err := deactivateAll(tx); err != nil {
				return err
			}
		}
		return tx.Create(m).Error
	})
	if err != nil {
		return 0, errors.Wrap(err, "create academic year")
	}
	return m.AcademicYearID, nil
}

func (r *AcademicYearRepository) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).
		Model(&model.AcademicYearModel{}).
		Where("academic_year_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "update academic year")
	}
	return res.RowsAffected, nil
}

// SetActive: nonaktifkan semua → aktifkan target. 404 kalau id tidak ada.
func (r *AcademicYearRepository) SetActive(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.AcademicYearModel{}).
			Where("academic_year_id = ?", id).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "check academic year")
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
		}
		if err := deactivateAll(tx); err != nil {
			return err
		}
		if err := tx.Model(&model.AcademicYearModel{}).
			Where("academic_year_id = ?", id).
			Update("academic_year_is_active", true).Error; err != nil {
			return errors.Wrap(err, "activate academic year")
		}
		return nil
	})
}

func deactivateAll(tx *gorm.DB) error {
	if err := tx.Model(&model.AcademicYearModel{}).
		Where("academic_year_is_active = ?", true).
		Update("academic_year_is_active", false).Error; err != nil {
		return errors.Wrap(err, "deactivate academic years")
	}
	return nil
}

// Delete: siswa tahun ini (beserta riwayatnya) → section → grade → tahun ajaran.
func (r *AcademicYearRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var (
		affected int64
		docs     []string
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gradeIDs []uint
		if err := tx.Model(&gradeModel.GradeModel{}).
			Where("grade_academic_year_id = ?", id).
			Pluck("grade_id", &gradeIDs).Error; err != nil {
			return errors.Wrap(err, "list grades of year")
		}

		var studentIDs []uint
		q := tx.Model(&studentModel.StudentModel{}).Where("student_academic_year_id = ?", id)
		if len(gradeIDs) > 0 {
			q = q.Or("student_grade_id IN ?", gradeIDs)
		}
		if err := q.Pluck("student_id", &studentIDs).Error; err != nil {
			return errors.Wrap(err, "list students of year")
		}
		var err error
		if docs, err = studentRepo.DeleteStudentsTx(tx, studentIDs); err != nil {
			return err
		}

		if len(gradeIDs) > 0 {
			if err := tx.Where("section_grade_id IN ?", gradeIDs).
				Delete(&sectionModel.SectionModel{}).Error; err != nil {
				return errors.Wrap(err, "delete sections of year")
			}
			if err := tx.Where("grade_id IN ?", gradeIDs).
				Delete(&gradeModel.GradeModel{}).Error; err != nil {
				return errors.Wrap(err, "delete grades of year")
			}
		}

		res := tx.Where("academic_year_id = ?", id).Delete(&model.AcademicYearModel{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete academic year")
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
