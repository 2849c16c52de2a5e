package dto

import (
	"strings"

	"disiplinku_backend/internals/features/academics/grades/model"
)

type CreateGradeRequest struct {
	GradeName           string `json:"grade_name" validate:"required,max=50"`
	GradeLevel          int    `json:"grade_level" validate:"required,min=1,max=20"`
	GradeAcademicYearID uint   `json:"grade_academic_year_id" validate:"required"`
}

func (r *CreateGradeRequest) Normalize() {
	r.GradeName = strings.TrimSpace(r.GradeName)
}

func (r *CreateGradeRequest) ToModel() *model.GradeModel {
	return &model.GradeModel{
		GradeName:           r.GradeName,
		GradeLevel:          r.GradeLevel,
		GradeAcademicYearID: r.GradeAcademicYearID,
	}
}

type UpdateGradeRequest struct {
	GradeName  *string `json:"grade_name" validate:"omitempty,min=1,max=50"`
	GradeLevel *int    `json:"grade_level" validate:"omitempty,min=1,max=20"`
}

func (r *UpdateGradeRequest) Normalize() {
	if r.GradeName != nil {
		s := strings.TrimSpace(*r.GradeName)
		r.GradeName = &s
	}
}

func (r *UpdateGradeRequest) BuildUpdateMap() map[string]any {
	up := map[string]any{}
	if r.GradeName != nil {
		up["grade_name"] = *r.GradeName
	}
	if r.GradeLevel != nil {
		up["grade_level"] = *r.GradeLevel
	}
	return up
}
