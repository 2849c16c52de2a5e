// file: internals/features/discipline/violations/model/violation_model.go
package model

import (
	"time"

	"gorm.io/gorm"

	studentModel "disiplinku_backend/internals/features/students/students/model"
)

type ViolationModel struct {
	ViolationID        uint `gorm:"primaryKey;autoIncrement;column:violation_id" json:"violation_id"`
	ViolationStudentID uint `gorm:"not null;index:idx_violations_student;column:violation_student_id" json:"violation_student_id"`

	// NULL setelah jenis pelanggaran dihapus; snapshot di bawah tetap utuh
	ViolationTypeID *uint `gorm:"index:idx_violations_type;column:violation_type_id" json:"violation_type_id"`

	// ============ Snapshot (disalin saat dicatat, tidak pernah berubah) ============
	ViolationPoints           int    `gorm:"not null;column:violation_points" json:"violation_points"`
	ViolationTypeNameSnapshot string `gorm:"type:varchar(200);not null;column:violation_type_name_snapshot" json:"violation_type_name_snapshot"`
	ViolationSeveritySnapshot string `gorm:"type:varchar(16);not null;column:violation_severity_snapshot" json:"violation_severity_snapshot"`

	ViolationDate        time.Time `gorm:"not null;index:idx_violations_date;column:violation_date" json:"violation_date"`
	ViolationLocation    *string   `gorm:"type:varchar(200);column:violation_location" json:"violation_location,omitempty"`
	ViolationDescription *string   `gorm:"type:text;column:violation_description" json:"violation_description,omitempty"`

	ViolationCreatedBy *string   `gorm:"type:varchar(64);column:violation_created_by" json:"violation_created_by,omitempty"`
	ViolationCreatedAt time.Time `gorm:"not null;autoCreateTime;column:violation_created_at" json:"violation_created_at"`

	// FK ke violation_types dideklarasikan di ViolationTypeModel.Violations
	Student *studentModel.StudentModel `gorm:"foreignKey:ViolationStudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ViolationModel) TableName() string { return "violations" }

func (m *ViolationModel) BeforeSave(tx *gorm.DB) error {
	if !m.ViolationDate.IsZero() {
		m.ViolationDate = m.ViolationDate.UTC()
	}
	return nil
}
