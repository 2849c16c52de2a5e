package dto

import (
	"strings"

	"disiplinku_backend/internals/features/discipline/violation_types/model"
	helper "disiplinku_backend/internals/helpers"
)

type CreateViolationTypeRequest struct {
	ViolationTypeName            string  `json:"violation_type_name" validate:"required,max=200"`
	ViolationTypeSeverity        string  `json:"violation_type_severity" validate:"required,oneof=minor moderate severe"`
	ViolationTypePoints          int     `json:"violation_type_points" validate:"min=0,max=1000"`
	ViolationTypeDescription     *string `json:"violation_type_description"`
	ViolationTypeSuggestedAction *string `json:"violation_type_suggested_action"`
	ViolationTypeIsActive        *bool   `json:"violation_type_is_active"`
}

func (r *CreateViolationTypeRequest) Normalize() {
	r.ViolationTypeName = strings.TrimSpace(r.ViolationTypeName)
	r.ViolationTypeSeverity = strings.ToLower(strings.TrimSpace(r.ViolationTypeSeverity))
	r.ViolationTypeDescription = helper.StrPtr(r.ViolationTypeDescription)
	r.ViolationTypeSuggestedAction = helper.StrPtr(r.ViolationTypeSuggestedAction)
}

func (r *CreateViolationTypeRequest) ToModel(createdBy *string) *model.ViolationTypeModel {
	active := true
	if r.ViolationTypeIsActive != nil {
		active = *r.ViolationTypeIsActive
	}
	return &model.ViolationTypeModel{
		ViolationTypeName:            r.ViolationTypeName,
		ViolationTypeSeverity:        r.ViolationTypeSeverity,
		ViolationTypePoints:          r.ViolationTypePoints,
		ViolationTypeDescription:     r.ViolationTypeDescription,
		ViolationTypeSuggestedAction: r.ViolationTypeSuggestedAction,
		ViolationTypeIsActive:        active,
		ViolationTypeCreatedBy:       createdBy,
	}
}

// Perubahan poin tidak mengubah pelanggaran yang sudah tercatat (snapshot).
type UpdateViolationTypeRequest struct {
	ViolationTypeName            *string `json:"violation_type_name" validate:"omitempty,min=1,max=200"`
	ViolationTypeSeverity        *string `json:"violation_type_severity" validate:"omitempty,oneof=minor moderate severe"`
	ViolationTypePoints          *int    `json:"violation_type_points" validate:"omitempty,min=0,max=1000"`
	ViolationTypeDescription     *string `json:"violation_type_description"`
	ViolationTypeSuggestedAction *string `json:"violation_type_suggested_action"`
	ViolationTypeIsActive        *bool   `json:"violation_type_is_active"`
}

func (r *UpdateViolationTypeRequest) Normalize() {
	if r.ViolationTypeName != nil {
		s := strings.TrimSpace(*r.ViolationTypeName)
		r.ViolationTypeName = &s
	}
	if r.ViolationTypeSeverity != nil {
		s := strings.ToLower(strings.TrimSpace(*r.ViolationTypeSeverity))
		r.ViolationTypeSeverity = &s
	}
}

func (r *UpdateViolationTypeRequest) BuildUpdateMap() map[string]any {
	up := map[string]any{}
	if r.ViolationTypeName != nil {
		up["violation_type_name"] = *r.ViolationTypeName
	}
	if r.ViolationTypeSeverity != nil {
		up["violation_type_severity"] = *r.ViolationTypeSeverity
	}
	if r.ViolationTypePoints != nil {
		up["violation_type_points"] = *r.ViolationTypePoints
	}
	if r.ViolationTypeDescription != nil {
		up["violation_type_description"] = helper.StrPtr(r.ViolationTypeDescription)
	}
	if r.ViolationTypeSuggestedAction != nil {
		up["violation_type_suggested_action"] = helper.StrPtr(r.ViolationTypeSuggestedAction)
	}
	if r.ViolationTypeIsActive != nil {
		up["violation_type_is_active"] = *r.ViolationTypeIsActive
	}
	return up
}
