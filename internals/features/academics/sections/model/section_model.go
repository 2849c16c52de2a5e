package model

import (
	"strings"
	"time"

	"gorm.io/gorm"

	gradeModel "disiplinku_backend/internals/features/academics/grades/model"
)

type SectionModel struct {
	SectionID uint `gorm:"primaryKey;autoIncrement;column:section_id" json:"section_id"`

	// Example: "أ"
	SectionName    string `gorm:"type:varchar(50);not null;column:section_name" json:"section_name"`
	SectionGradeID uint   `gorm:"not null;index:idx_sections_grade;column:section_grade_id" json:"section_grade_id"`

	SectionCreatedAt time.Time `gorm:"not null;autoCreateTime;column:section_created_at" json:"section_created_at"`

	Grade *gradeModel.GradeModel `gorm:"foreignKey:SectionGradeID;references:GradeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (SectionModel) TableName() string { return "sections" }

func (m *SectionModel) BeforeSave(tx *gorm.DB) error {
	if m.SectionName != "" {
		m.SectionName = strings.TrimSpace(m.SectionName)
	}
	return nil
}
