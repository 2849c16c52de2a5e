package model

import (
	"strings"
	"time"

	"gorm.io/gorm"

	ayModel "disiplinku_backend/internals/features/academics/academic_years/model"
)

type GradeModel struct {
	GradeID uint `gorm:"primaryKey;autoIncrement;column:grade_id" json:"grade_id"`

	// Example: "الصف الأول", level 1
	GradeName  string `gorm:"type:varchar(50);not null;column:grade_name" json:"grade_name"`
	GradeLevel int    `gorm:"not null;column:grade_level" json:"grade_level"`

	GradeAcademicYearID uint `gorm:"not null;index:idx_grades_academic_year;column:grade_academic_year_id" json:"grade_academic_year_id"`

	GradeCreatedAt time.Time `gorm:"not null;autoCreateTime;column:grade_created_at" json:"grade_created_at"`

	AcademicYear *ayModel.AcademicYearModel `gorm:"foreignKey:GradeAcademicYearID;references:AcademicYearID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (GradeModel) TableName() string { return "grades" }

func (m *GradeModel) BeforeSave(tx *gorm.DB) error {
	if m.GradeName != "" {
		m.GradeName = strings.TrimSpace(m.GradeName)
	}
	return nil
}
