package dto

import (
	"strings"

	"disiplinku_backend/internals/features/academics/sections/model"
)

type CreateSectionRequest struct {
	SectionName    string `json:"section_name" validate:"required,max=50"`
	SectionGradeID uint   `json:"section_grade_id" validate:"required"`
}

func (r *CreateSectionRequest) Normalize() {
	r.SectionName = strings.TrimSpace(r.SectionName)
}

func (r *CreateSectionRequest) ToModel() *model.SectionModel {
	return &model.SectionModel{SectionName: r.SectionName, SectionGradeID: r.SectionGradeID}
}

// Hanya nama yang bisa diubah; pindah grade = buat section baru.
type UpdateSectionRequest struct {
	SectionName string `json:"section_name" validate:"required,max=50"`
}

func (r *UpdateSectionRequest) Normalize() {
	r.SectionName = strings.TrimSpace(r.SectionName)
}
