// file: internals/features/students/students/model/student_model.go
package model

import (
	"strings"
	"time"

	"gorm.io/gorm"

	ayModel "disiplinku_backend/internals/features/academics/academic_years/model"
	gradeModel "disiplinku_backend/internals/features/academics/grades/model"
	sectionModel "disiplinku_backend/internals/features/academics/sections/model"
)

type StudentModel struct {
	StudentID uint `gorm:"primaryKey;autoIncrement;column:student_id" json:"student_id"`

	// Nomor induk, unik global. Example: "STD1725000000000"
	StudentNumber string `gorm:"type:varchar(50);not null;uniqueIndex:uq_students_number;column:student_number" json:"student_number"`
	StudentName   string `gorm:"type:varchar(200);not null;index:idx_students_name;column:student_name" json:"student_name"`

	// Placement (harus konsisten: section ∈ grade, grade ∈ academic year)
	StudentGradeID        uint `gorm:"not null;index:idx_students_grade;column:student_grade_id" json:"student_grade_id"`
	StudentSectionID      uint `gorm:"not null;index:idx_students_section;column:student_section_id" json:"student_section_id"`
	StudentAcademicYearID uint `gorm:"not null;index:idx_students_academic_year;column:student_academic_year_id" json:"student_academic_year_id"`

	StudentGuardianName  *string `gorm:"type:varchar(200);column:student_guardian_name" json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string `gorm:"type:varchar(30);column:student_guardian_phone" json:"student_guardian_phone,omitempty"`
	StudentNotes         *string `gorm:"type:text;column:student_notes" json:"student_notes,omitempty"`

	StudentIsActive bool `gorm:"not null;column:student_is_active" json:"student_is_active"`

	StudentCreatedBy *string   `gorm:"type:varchar(64);column:student_created_by" json:"student_created_by,omitempty"`
	StudentCreatedAt time.Time `gorm:"not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:student_updated_at" json:"student_updated_at"`

	Grade        *gradeModel.GradeModel     `gorm:"foreignKey:StudentGradeID;references:GradeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Section      *sectionModel.SectionModel `gorm:"foreignKey:StudentSectionID;references:SectionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	AcademicYear *ayModel.AcademicYearModel `gorm:"foreignKey:StudentAcademicYearID;references:AcademicYearID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	if m.StudentNumber != "" {
		m.StudentNumber = strings.TrimSpace(m.StudentNumber)
	}
	if m.StudentName != "" {
		m.StudentName = strings.TrimSpace(m.StudentName)
	}
	m.StudentGuardianName = trimPtr(m.StudentGuardianName)
	m.StudentGuardianPhone = trimPtr(m.StudentGuardianPhone)
	m.StudentNotes = trimPtr(m.StudentNotes)
	return nil
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
