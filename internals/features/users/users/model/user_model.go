package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserModel struct {
	// id dari penyedia login (google sub) atau uuid untuk login password
	UserID          string  `gorm:"type:varchar(64);primaryKey;column:user_id" json:"user_id"`
	UserName        *string `gorm:"type:text;column:user_name" json:"user_name,omitempty"`
	// unik bila terisi (uq_users_email dibuat di Migrate)
	UserEmail       *string `gorm:"type:varchar(320);column:user_email" json:"user_email,omitempty"`
	UserLoginMethod *string `gorm:"type:varchar(64);column:user_login_method" json:"user_login_method,omitempty"`
	UserRole        string  `gorm:"type:varchar(16);not null;column:user_role" json:"user_role"`

	UserPasswordHash *string `gorm:"type:text;column:user_password_hash" json:"-"`

	UserCreatedAt    time.Time `gorm:"not null;autoCreateTime;column:user_created_at" json:"user_created_at"`
	UserUpdatedAt    time.Time `gorm:"not null;autoUpdateTime;column:user_updated_at" json:"user_updated_at"`
	UserLastSignedIn time.Time `gorm:"not null;column:user_last_signed_in" json:"user_last_signed_in"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeSave(tx *gorm.DB) error {
	if m.UserEmail != nil {
		e := strings.ToLower(strings.TrimSpace(*m.UserEmail))
		if e == "" {
			m.UserEmail = nil
		} else {
			m.UserEmail = &e
		}
	}
	if m.UserName != nil {
		n := strings.TrimSpace(*m.UserName)
		m.UserName = &n
	}
	if !m.UserLastSignedIn.IsZero() {
		m.UserLastSignedIn = m.UserLastSignedIn.UTC()
	}
	return nil
}

func (m *UserModel) DisplayName() string {
	if m.UserName != nil && *m.UserName != "" {
		return *m.UserName
	}
	if m.UserEmail != nil {
		return *m.UserEmail
	}
	return m.UserID
}
