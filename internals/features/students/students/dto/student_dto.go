// file: internals/features/students/students/dto/student_dto.go
package dto

import (
	"strings"

	"disiplinku_backend/internals/features/students/students/model"
	helper "disiplinku_backend/internals/helpers"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateStudentRequest struct {
	// Kosong → digenerate "STD<millis>"
	StudentNumber string `json:"student_number" validate:"omitempty,max=50"`
	StudentName   string `json:"student_name" validate:"required,max=200"`

	StudentGradeID   uint `json:"student_grade_id" validate:"required"`
	StudentSectionID uint `json:"student_section_id" validate:"required"`
	// 0 → diturunkan dari grade
	StudentAcademicYearID uint `json:"student_academic_year_id"`

	StudentGuardianName  *string `json:"student_guardian_name" validate:"omitempty,max=200"`
	StudentGuardianPhone *string `json:"student_guardian_phone" validate:"omitempty,max=30"`
	StudentNotes         *string `json:"student_notes"`
	StudentIsActive      *bool   `json:"student_is_active"`
}

func (r *CreateStudentRequest) Normalize() {
	r.StudentNumber = strings.TrimSpace(r.StudentNumber)
	r.StudentName = strings.TrimSpace(r.StudentName)
	r.StudentGuardianName = helper.StrPtr(r.StudentGuardianName)
	r.StudentGuardianPhone = helper.StrPtr(r.StudentGuardianPhone)
	r.StudentNotes = helper.StrPtr(r.StudentNotes)
}

func (r *CreateStudentRequest) ToModel(createdBy *string) *model.StudentModel {
	active := true
	if r.StudentIsActive != nil {
		active = *r.StudentIsActive
	}
	return &model.StudentModel{
		StudentNumber:         r.StudentNumber,
		StudentName:           r.StudentName,
		StudentGradeID:        r.StudentGradeID,
		StudentSectionID:      r.StudentSectionID,
		StudentAcademicYearID: r.StudentAcademicYearID,
		StudentGuardianName:   r.StudentGuardianName,
		StudentGuardianPhone:  r.StudentGuardianPhone,
		StudentNotes:          r.StudentNotes,
		StudentIsActive:       active,
		StudentCreatedBy:      createdBy,
	}
}

// PATCH: field nil tidak diubah. String kosong pada field opsional → NULL.
type UpdateStudentRequest struct {
	StudentNumber *string `json:"student_number" validate:"omitempty,min=1,max=50"`
	StudentName   *string `json:"student_name" validate:"omitempty,min=1,max=200"`

	StudentGradeID        *uint `json:"student_grade_id" validate:"omitempty,min=1"`
	StudentSectionID      *uint `json:"student_section_id" validate:"omitempty,min=1"`
	StudentAcademicYearID *uint `json:"student_academic_year_id" validate:"omitempty,min=1"`

	StudentGuardianName  *string `json:"student_guardian_name" validate:"omitempty,max=200"`
	StudentGuardianPhone *string `json:"student_guardian_phone" validate:"omitempty,max=30"`
	StudentNotes         *string `json:"student_notes"`
	StudentIsActive      *bool   `json:"student_is_active"`
}

func (r *UpdateStudentRequest) Normalize() {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		s := strings.TrimSpace(*p)
		return &s
	}
	r.StudentNumber = trim(r.StudentNumber)
	r.StudentName = trim(r.StudentName)
	r.StudentGuardianName = trim(r.StudentGuardianName)
	r.StudentGuardianPhone = trim(r.StudentGuardianPhone)
	r.StudentNotes = trim(r.StudentNotes)
}

func (r *UpdateStudentRequest) BuildUpdateMap() map[string]any {
	up := map[string]any{}
	if r.StudentNumber != nil {
		up["student_number"] = *r.StudentNumber
	}
	if r.StudentName != nil {
		up["student_name"] = *r.StudentName
	}
	if r.StudentGradeID != nil {
		up["student_grade_id"] = *r.StudentGradeID
	}
	if r.StudentSectionID != nil {
		up["student_section_id"] = *r.StudentSectionID
	}
	if r.StudentAcademicYearID != nil {
		up["student_academic_year_id"] = *r.StudentAcademicYearID
	}
	if r.StudentGuardianName != nil {
		up["student_guardian_name"] = helper.StrPtr(r.StudentGuardianName)
	}
	if r.StudentGuardianPhone != nil {
		up["student_guardian_phone"] = helper.StrPtr(r.StudentGuardianPhone)
	}
	if r.StudentNotes != nil {
		up["student_notes"] = helper.StrPtr(r.StudentNotes)
	}
	if r.StudentIsActive != nil {
		up["student_is_active"] = *r.StudentIsActive
	}
	return up
}
