// file: internals/features/discipline/violation_types/model/violation_type_model.go
package model

import (
	"strings"
	"time"

	"gorm.io/gorm"

	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
)

type ViolationTypeModel struct {
	ViolationTypeID uint `gorm:"primaryKey;autoIncrement;column:violation_type_id" json:"violation_type_id"`

	// Example: "التأخر عن الحصة"
	ViolationTypeName string `gorm:"type:varchar(200);not null;column:violation_type_name" json:"violation_type_name"`
	// minor | moderate | severe
	ViolationTypeSeverity string `gorm:"type:varchar(16);not null;column:violation_type_severity" json:"violation_type_severity"`
	ViolationTypePoints   int    `gorm:"not null;check:chk_violation_types_points,violation_type_points >= 0;column:violation_type_points" json:"violation_type_points"`

	ViolationTypeDescription     *string `gorm:"type:text;column:violation_type_description" json:"violation_type_description,omitempty"`
	ViolationTypeSuggestedAction *string `gorm:"type:text;column:violation_type_suggested_action" json:"violation_type_suggested_action,omitempty"`

	ViolationTypeIsActive bool `gorm:"not null;column:violation_type_is_active" json:"violation_type_is_active"`

	ViolationTypeCreatedBy *string   `gorm:"type:varchar(64);column:violation_type_created_by" json:"violation_type_created_by,omitempty"`
	ViolationTypeCreatedAt time.Time `gorm:"not null;autoCreateTime;column:violation_type_created_at" json:"violation_type_created_at"`
	ViolationTypeUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:violation_type_updated_at" json:"violation_type_updated_at"`

	Violations []violationModel.ViolationModel `gorm:"foreignKey:ViolationTypeID;references:ViolationTypeID;constraint:OnDelete:SET NULL" json:"-"`
}

func (ViolationTypeModel) TableName() string { return "violation_types" }

func (m *ViolationTypeModel) BeforeSave(tx *gorm.DB) error {
	if m.ViolationTypeName != "" {
		m.ViolationTypeName = strings.TrimSpace(m.ViolationTypeName)
	}
	if m.ViolationTypeSeverity != "" {
		m.ViolationTypeSeverity = strings.ToLower(strings.TrimSpace(m.ViolationTypeSeverity))
	}
	return nil
}
