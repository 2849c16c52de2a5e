// file: internals/features/academics/academic_years/model/academic_year_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type AcademicYearModel struct {
	AcademicYearID uint `gorm:"primaryKey;autoIncrement;column:academic_year_id" json:"academic_year_id"`

	// Example: "2024-2025"
	AcademicYearName      string    `gorm:"type:varchar(50);not null;column:academic_year_name" json:"academic_year_name"`
	AcademicYearStartDate time.Time `gorm:"not null;column:academic_year_start_date" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"not null;column:academic_year_end_date" json:"academic_year_end_date"`

	// maksimal satu baris true (partial unique index uq_academic_years_single_active)
	AcademicYearIsActive bool `gorm:"not null;column:academic_year_is_active" json:"academic_year_is_active"`

	AcademicYearCreatedBy *string   `gorm:"type:varchar(64);column:academic_year_created_by" json:"academic_year_created_by,omitempty"`
	AcademicYearCreatedAt time.Time `gorm:"not null;autoCreateTime;column:academic_year_created_at" json:"academic_year_created_at"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

// Mirror CHECK: end >= start (hanya kalau keduanya terisi; update via map tidak membawa nilai)
func (m *AcademicYearModel) BeforeSave(tx *gorm.DB) error {
	if !m.AcademicYearStartDate.IsZero() && !m.AcademicYearEndDate.IsZero() &&
		m.AcademicYearEndDate.Before(m.AcademicYearStartDate) {
		return errors.New("academic_year_end_date must be >= academic_year_start_date")
	}
	if m.AcademicYearName != "" {
		m.AcademicYearName = strings.TrimSpace(m.AcademicYearName)
	}
	if !m.AcademicYearStartDate.IsZero() {
		m.AcademicYearStartDate = m.AcademicYearStartDate.UTC()
	}
	if !m.AcademicYearEndDate.IsZero() {
		m.AcademicYearEndDate = m.AcademicYearEndDate.UTC()
	}
	return nil
}
