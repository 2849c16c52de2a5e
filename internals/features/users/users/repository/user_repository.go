// file: internals/features/users/users/repository/user_repository.go
package repository

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/users/users/model"
	helper "disiplinku_backend/internals/helpers"
)

// UpsertInput: data login dari penyedia identitas.
type UpsertInput struct {
	ID          string
	Name        *string
	Email       *string
	LoginMethod string
}

type UserRepository struct {
	DB          *gorm.DB
	OwnerOpenID string // user dengan id ini otomatis admin
}

func NewUserRepository(db *gorm.DB, ownerOpenID string) *UserRepository {
	return &UserRepository{DB: db, OwnerOpenID: strings.TrimSpace(ownerOpenID)}
}

func (r *UserRepository) defaultRole(id string) string {
	if r.OwnerOpenID != "" && id == r.OwnerOpenID {
		return constants.RoleAdmin
	}
	return constants.RoleUser
}

var errEmailTaken = fiber.NewError(fiber.StatusConflict, "Email sudah dipakai akun lain")

// Upsert: insert kalau belum ada, selain itu perbarui nama/email/metode login + last_signed_in.
// Role user lama tidak diubah, kecuali owner yang selalu admin.
// Email milik user lain → 409; akun tidak digabung otomatis.
func (r *UserRepository) Upsert(ctx context.Context, in UpsertInput) (*model.UserModel, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "User ID wajib diisi")
	}
	now := time.Now().UTC()

	var email *string
	if in.Email != nil {
		if e := strings.ToLower(strings.TrimSpace(*in.Email)); e != "" {
			email = &e
		}
	}

	var out model.UserModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if email != nil {
			var n int64
			if err := tx.Model(&model.UserModel{}).
				Where("user_email = ? AND user_id <> ?", *email, id).
				Count(&n).Error; err != nil {
				return errors.Wrap(err, "check email")
			}
			if n > 0 {
				return errEmailTaken
			}
		}

		err := tx.First(&out, "user_id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			method := in.LoginMethod
			out = model.UserModel{
				UserID:           id,
				UserName:         in.Name,
				UserEmail:        email,
				UserLoginMethod:  &method,
				UserRole:         r.defaultRole(id),
				UserLastSignedIn: now,
			}
			if err := tx.Create(&out).Error; err != nil {
				if helper.IsUniqueViolation(err) {
					return errEmailTaken
				}
				return errors.Wrap(err, "create user")
			}
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "load user")
		}

		fields := map[string]any{
			"user_last_signed_in": now,
			"user_login_method":   in.LoginMethod,
		}
		if in.Name != nil {
			fields["user_name"] = strings.TrimSpace(*in.Name)
		}
		if email != nil {
			fields["user_email"] = *email
		}
		if out.UserRole == "" || r.defaultRole(id) == constants.RoleAdmin {
			fields["user_role"] = r.defaultRole(id)
		}
		if err := tx.Model(&model.UserModel{}).Where("user_id = ?", id).Updates(fields).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return errEmailTaken
			}
			return errors.Wrap(err, "update user")
		}
		return tx.First(&out, "user_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Create untuk akun password (CLI adduser). Email dipakai sekali.
func (r *UserRepository) Create(ctx context.Context, m *model.UserModel) error {
	if m.UserEmail != nil {
		if existing := r.GetByEmail(ctx, *m.UserEmail); existing != nil {
			return fiber.NewError(fiber.StatusConflict, "Email sudah terdaftar")
		}
	}
	if m.UserRole == "" {
		m.UserRole = r.defaultRole(m.UserID)
	}
	if m.UserLastSignedIn.IsZero() {
		m.UserLastSignedIn = time.Now().UTC()
	}
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "User sudah ada")
		}
		return errors.Wrap(err, "create user")
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) *model.UserModel {
	var m model.UserModel
	if err := r.DB.WithContext(ctx).First(&m, "user_id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] user %s: %v", id, err)
		}
		return nil
	}
	return &m
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) *model.UserModel {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}
	var m model.UserModel
	if err := r.DB.WithContext(ctx).First(&m, "user_email = ?", email).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] user by email: %v", err)
		}
		return nil
	}
	return &m
}

// List: terbaru dulu; q mencari nama/email.
func (r *UserRepository) List(ctx context.Context, q string) []model.UserModel {
	tx := r.DB.WithContext(ctx).Model(&model.UserModel{})
	if term := strings.TrimSpace(q); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		tx = tx.Where("LOWER(COALESCE(user_name, '')) LIKE ? OR LOWER(COALESCE(user_email, '')) LIKE ?", like, like)
	}
	rows := make([]model.UserModel, 0)
	if err := tx.Order("user_created_at DESC, user_id ASC").Find(&rows).Error; err != nil {
		log.Printf("[WARN] users list: %v", err)
		return []model.UserModel{}
	}
	return rows
}

func (r *UserRepository) SetRole(ctx context.Context, id, role string) (int64, error) {
	if !constants.IsValidRole(role) {
		return 0, fiber.NewError(fiber.StatusUnprocessableEntity, "Role tidak valid")
	}
	res := r.DB.WithContext(ctx).Model(&model.UserModel{}).Where("user_id = ?", id).Update("user_role", role)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "set role")
	}
	return res.RowsAffected, nil
}

func (r *UserRepository) SetPassword(ctx context.Context, id, hash string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.UserModel{}).Where("user_id = ?", id).Update("user_password_hash", hash)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "set password")
	}
	return res.RowsAffected, nil
}
