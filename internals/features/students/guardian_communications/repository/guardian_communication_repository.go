package repository

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"disiplinku_backend/internals/features/students/guardian_communications/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
)

type GuardianCommunicationRow struct {
	model.GuardianCommunicationModel
	CreatedByName *string `gorm:"column:created_by_name" json:"created_by_name,omitempty"`
}

type GuardianCommunicationRepository struct {
	DB *gorm.DB
}

func NewGuardianCommunicationRepository(db *gorm.DB) *GuardianCommunicationRepository {
	return &GuardianCommunicationRepository{DB: db}
}

// Create: siswa harus ada (404).
func (r *GuardianCommunicationRepository) Create(ctx context.Context, m *model.GuardianCommunicationModel) (uint, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_id = ?", m.GuardianCommunicationStudentID).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "check student")
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		if err := tx.Create(m).Error; err != nil {
			return errors.Wrap(err, "create guardian communication")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return m.GuardianCommunicationID, nil
}

// GetByStudent: terbaru dulu.
func (r *GuardianCommunicationRepository) GetByStudent(ctx context.Context, studentID uint) []GuardianCommunicationRow {
	rows := make([]GuardianCommunicationRow, 0)
	if err := r.DB.WithContext(ctx).
		Table("guardian_communications AS gc").
		Select("gc.*, u.user_name AS created_by_name").
		Joins("LEFT JOIN users u ON u.user_id = gc.guardian_communication_created_by").
		Where("gc.guardian_communication_student_id = ?", studentID).
		Order("gc.guardian_communication_date DESC, gc.guardian_communication_id DESC").
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] guardian communications student %d: %v", studentID, err)
		return []GuardianCommunicationRow{}
	}
	return rows
}

func (r *GuardianCommunicationRepository) GetByID(ctx context.Context, id uint) *model.GuardianCommunicationModel {
	var m model.GuardianCommunicationModel
	if err := r.DB.WithContext(ctx).First(&m, "guardian_communication_id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] guardian communication %d: %v", id, err)
		}
		return nil
	}
	return &m
}

func (r *GuardianCommunicationRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("guardian_communication_id = ?", id).Delete(&model.GuardianCommunicationModel{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "delete guardian communication")
	}
	return res.RowsAffected, nil
}
