package repository

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	atModel "disiplinku_backend/internals/features/discipline/action_types/model"
	"disiplinku_backend/internals/features/discipline/disciplinary_actions/model"
	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
)

// DisciplinaryActionRow: tindakan + info jenis & pelanggaran terkait.
type DisciplinaryActionRow struct {
	model.DisciplinaryActionModel
	ActionTypeSeverity *string    `gorm:"column:action_type_severity" json:"action_type_severity,omitempty"`
	ViolationTypeName  *string    `gorm:"column:violation_type_name_snapshot" json:"violation_type_name,omitempty"`
	ViolationDate      *time.Time `gorm:"column:violation_date" json:"violation_date,omitempty"`
	CreatedByName      *string    `gorm:"column:created_by_name" json:"created_by_name,omitempty"`
}

type CreateInput struct {
	StudentID   uint
	TypeID      uint
	ViolationID *uint
	Date        time.Time
	Description *string
	CreatedBy   *string
}

type DisciplinaryActionRepository struct {
	DB *gorm.DB
}

func NewDisciplinaryActionRepository(db *gorm.DB) *DisciplinaryActionRepository {
	return &DisciplinaryActionRepository{DB: db}
}

func (r *DisciplinaryActionRepository) base(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("disciplinary_actions AS da").
		Select(`da.*, atp.action_type_severity,
			v.violation_type_name_snapshot, v.violation_date,
			u.user_name AS created_by_name`).
		Joins("LEFT JOIN action_types atp ON atp.action_type_id = da.disciplinary_action_type_id").
		Joins("LEFT JOIN violations v ON v.violation_id = da.disciplinary_action_violation_id").
		Joins("LEFT JOIN users u ON u.user_id = da.disciplinary_action_created_by")
}

// GetByStudent: terbaru dulu.
func (r *DisciplinaryActionRepository) GetByStudent(ctx context.Context, studentID uint) []DisciplinaryActionRow {
	rows := make([]DisciplinaryActionRow, 0)
	if err := r.base(ctx).
		Where("da.disciplinary_action_student_id = ?", studentID).
		Order("da.disciplinary_action_date DESC, da.disciplinary_action_id DESC").
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] disciplinary actions student %d: %v", studentID, err)
		return []DisciplinaryActionRow{}
	}
	return rows
}

func (r *DisciplinaryActionRepository) GetByID(ctx context.Context, id uint) *DisciplinaryActionRow {
	rows := make([]DisciplinaryActionRow, 0, 1)
	if err := r.base(ctx).Where("da.disciplinary_action_id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		log.Printf("[WARN] disciplinary action %d: %v", id, err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

// Create: siswa & jenis tindakan harus ada; pelanggaran (opsional) harus milik siswa yang sama.
func (r *DisciplinaryActionRepository) Create(ctx context.Context, in CreateInput) (*model.DisciplinaryActionModel, error) {
	var out *model.DisciplinaryActionModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&studentModel.StudentModel{}).Where("student_id = ?", in.StudentID).Count(&n).Error; err != nil {
			return errors.Wrap(err, "check student")
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}

		var at atModel.ActionTypeModel
		if err := tx.First(&at, "action_type_id = ?", in.TypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Jenis tindakan tidak ditemukan")
			}
			return errors.Wrap(err, "load action type")
		}

		if in.ViolationID != nil {
			var v violationModel.ViolationModel
			if err := tx.First(&v, "violation_id = ?", *in.ViolationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Pelanggaran tidak ditemukan")
				}
				return errors.Wrap(err, "load violation")
			}
			if v.ViolationStudentID != in.StudentID {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "Pelanggaran bukan milik siswa ini")
			}
		}

		typeID := at.ActionTypeID
		m := &model.DisciplinaryActionModel{
			DisciplinaryActionStudentID:        in.StudentID,
			DisciplinaryActionTypeID:           &typeID,
			DisciplinaryActionTypeNameSnapshot: at.ActionTypeName,
			DisciplinaryActionViolationID:      in.ViolationID,
			DisciplinaryActionDate:             in.Date,
			DisciplinaryActionDescription:      in.Description,
			DisciplinaryActionCreatedBy:        in.CreatedBy,
		}
		if err := tx.Create(m).Error; err != nil {
			return errors.Wrap(err, "create disciplinary action")
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetDocumentURL mengembalikan URL lama (kalau ada) supaya objeknya bisa dihapus.
func (r *DisciplinaryActionRepository) SetDocumentURL(ctx context.Context, id uint, url string) (*string, error) {
	var prev *string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.DisciplinaryActionModel
		if err := tx.First(&m, "disciplinary_action_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Tindakan disiplin tidak ditemukan")
			}
			return errors.Wrap(err, "load disciplinary action")
		}
		prev = m.DisciplinaryActionDocumentURL
		if err := tx.Model(&model.DisciplinaryActionModel{}).
			Where("disciplinary_action_id = ?", id).
			Update("disciplinary_action_document_url", url).Error; err != nil {
			return errors.Wrap(err, "update document url")
		}
		return nil
	})
	return prev, err
}

func (r *DisciplinaryActionRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("disciplinary_action_id = ?", id).Delete(&model.DisciplinaryActionModel{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "delete disciplinary action")
	}
	return res.RowsAffected, nil
}
