package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type ActionTypeModel struct {
	ActionTypeID uint `gorm:"primaryKey;autoIncrement;column:action_type_id" json:"action_type_id"`

	// Example: "إنذار شفهي"
	ActionTypeName        string  `gorm:"type:varchar(200);not null;column:action_type_name" json:"action_type_name"`
	ActionTypeDescription *string `gorm:"type:text;column:action_type_description" json:"action_type_description,omitempty"`
	// minor | moderate | severe
	ActionTypeSeverity string `gorm:"type:varchar(16);not null;column:action_type_severity" json:"action_type_severity"`
	ActionTypeIsActive bool   `gorm:"not null;column:action_type_is_active" json:"action_type_is_active"`

	ActionTypeCreatedAt time.Time `gorm:"not null;autoCreateTime;column:action_type_created_at" json:"action_type_created_at"`
}

func (ActionTypeModel) TableName() string { return "action_types" }

func (m *ActionTypeModel) BeforeSave(tx *gorm.DB) error {
	if m.ActionTypeName != "" {
		m.ActionTypeName = strings.TrimSpace(m.ActionTypeName)
	}
	if m.ActionTypeSeverity != "" {
		m.ActionTypeSeverity = strings.ToLower(strings.TrimSpace(m.ActionTypeSeverity))
	}
	return nil
}
