package model

import (
	"time"

	"gorm.io/gorm"

	atModel "disiplinku_backend/internals/features/discipline/action_types/model"
	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
)

type DisciplinaryActionModel struct {
	DisciplinaryActionID        uint `gorm:"primaryKey;autoIncrement;column:disciplinary_action_id" json:"disciplinary_action_id"`
	DisciplinaryActionStudentID uint `gorm:"not null;index:idx_disciplinary_actions_student;column:disciplinary_action_student_id" json:"disciplinary_action_student_id"`

	// NULL setelah jenis tindakan dihapus; nama tetap di snapshot
	DisciplinaryActionTypeID           *uint  `gorm:"index:idx_disciplinary_actions_type;column:disciplinary_action_type_id" json:"disciplinary_action_type_id"`
	DisciplinaryActionTypeNameSnapshot string `gorm:"type:varchar(200);not null;column:disciplinary_action_type_name_snapshot" json:"disciplinary_action_type_name_snapshot"`

	// Opsional, harus milik siswa yang sama
	DisciplinaryActionViolationID *uint `gorm:"index:idx_disciplinary_actions_violation;column:disciplinary_action_violation_id" json:"disciplinary_action_violation_id"`

	DisciplinaryActionDate        time.Time `gorm:"not null;column:disciplinary_action_date" json:"disciplinary_action_date"`
	DisciplinaryActionDescription *string   `gorm:"type:text;column:disciplinary_action_description" json:"disciplinary_action_description,omitempty"`
	DisciplinaryActionDocumentURL *string   `gorm:"type:text;column:disciplinary_action_document_url" json:"disciplinary_action_document_url,omitempty"`

	DisciplinaryActionCreatedBy *string   `gorm:"type:varchar(64);column:disciplinary_action_created_by" json:"disciplinary_action_created_by,omitempty"`
	DisciplinaryActionCreatedAt time.Time `gorm:"not null;autoCreateTime;column:disciplinary_action_created_at" json:"disciplinary_action_created_at"`

	Student    *studentModel.StudentModel     `gorm:"foreignKey:DisciplinaryActionStudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	ActionType *atModel.ActionTypeModel       `gorm:"foreignKey:DisciplinaryActionTypeID;references:ActionTypeID;constraint:OnDelete:SET NULL" json:"-"`
	Violation  *violationModel.ViolationModel `gorm:"foreignKey:DisciplinaryActionViolationID;references:ViolationID;constraint:OnDelete:SET NULL" json:"-"`
}

func (DisciplinaryActionModel) TableName() string { return "disciplinary_actions" }

func (m *DisciplinaryActionModel) BeforeSave(tx *gorm.DB) error {
	if !m.DisciplinaryActionDate.IsZero() {
		m.DisciplinaryActionDate = m.DisciplinaryActionDate.UTC()
	}
	return nil
}
