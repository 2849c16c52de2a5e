package dto

import (
	"strings"
	"time"

	"disiplinku_backend/internals/features/users/users/model"
)

type UpdateUserRoleRequest struct {
	UserRole string `json:"user_role" validate:"required,oneof=user admin"`
}

func (r *UpdateUserRoleRequest) Normalize() {
	r.UserRole = strings.ToLower(strings.TrimSpace(r.UserRole))
}

// UserResponse: tanpa hash password.
type UserResponse struct {
	UserID           string    `json:"user_id"`
	UserName         *string   `json:"user_name,omitempty"`
	UserEmail        *string   `json:"user_email,omitempty"`
	UserLoginMethod  *string   `json:"user_login_method,omitempty"`
	UserRole         string    `json:"user_role"`
	UserCreatedAt    time.Time `json:"user_created_at"`
	UserLastSignedIn time.Time `json:"user_last_signed_in"`
}

func FromModel(m *model.UserModel) *UserResponse {
	if m == nil {
		return nil
	}
	return &UserResponse{
		UserID:           m.UserID,
		UserName:         m.UserName,
		UserEmail:        m.UserEmail,
		UserLoginMethod:  m.UserLoginMethod,
		UserRole:         m.UserRole,
		UserCreatedAt:    m.UserCreatedAt,
		UserLastSignedIn: m.UserLastSignedIn,
	}
}

func FromModels(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
