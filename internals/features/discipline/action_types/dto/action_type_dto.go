package dto

import (
	"strings"

	"disiplinku_backend/internals/features/discipline/action_types/model"
	helper "disiplinku_backend/internals/helpers"
)

type CreateActionTypeRequest struct {
	ActionTypeName        string  `json:"action_type_name" validate:"required,max=200"`
	ActionTypeDescription *string `json:"action_type_description"`
	ActionTypeSeverity    string  `json:"action_type_severity" validate:"required,oneof=minor moderate severe"`
	ActionTypeIsActive    *bool   `json:"action_type_is_active"`
}

func (r *CreateActionTypeRequest) Normalize() {
	r.ActionTypeName = strings.TrimSpace(r.ActionTypeName)
	r.ActionTypeSeverity = strings.ToLower(strings.TrimSpace(r.ActionTypeSeverity))
	r.ActionTypeDescription = helper.StrPtr(r.ActionTypeDescription)
}

func (r *CreateActionTypeRequest) ToModel() *model.ActionTypeModel {
	active := true
	if r.ActionTypeIsActive != nil {
		active = *r.ActionTypeIsActive
	}
	return &model.ActionTypeModel{
		ActionTypeName:        r.ActionTypeName,
		ActionTypeDescription: r.ActionTypeDescription,
		ActionTypeSeverity:    r.ActionTypeSeverity,
		ActionTypeIsActive:    active,
	}
}

type UpdateActionTypeRequest struct {
	ActionTypeName        *string `json:"action_type_name" validate:"omitempty,min=1,max=200"`
	ActionTypeDescription *string `json:"action_type_description"`
	ActionTypeSeverity    *string `json:"action_type_severity" validate:"omitempty,oneof=minor moderate severe"`
	ActionTypeIsActive    *bool   `json:"action_type_is_active"`
}

func (r *UpdateActionTypeRequest) Normalize() {
	if r.ActionTypeName != nil {
		s := strings.TrimSpace(*r.ActionTypeName)
		r.ActionTypeName = &s
	}
	if r.ActionTypeSeverity != nil {
		s := strings.ToLower(strings.TrimSpace(*r.ActionTypeSeverity))
		r.ActionTypeSeverity = &s
	}
}

func (r *UpdateActionTypeRequest) BuildUpdateMap() map[string]any {
	up := map[string]any{}
	if r.ActionTypeName != nil {
		up["action_type_name"] = *r.ActionTypeName
	}
	if r.ActionTypeDescription != nil {
		up["action_type_description"] = helper.StrPtr(r.ActionTypeDescription)
	}
	if r.ActionTypeSeverity != nil {
		up["action_type_severity"] = *r.ActionTypeSeverity
	}
	if r.ActionTypeIsActive != nil {
		up["action_type_is_active"] = *r.ActionTypeIsActive
	}
	return up
}
