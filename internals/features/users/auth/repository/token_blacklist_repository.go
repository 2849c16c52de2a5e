package repository

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"disiplinku_backend/internals/features/users/auth/model"
)

// TokenBlacklistRepository menyimpan HMAC-SHA256 token, bukan token mentah.
type TokenBlacklistRepository struct {
	DB     *gorm.DB
	Secret string
}

func NewTokenBlacklistRepository(db *gorm.DB, secret string) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{DB: db, Secret: secret}
}

func (r *TokenBlacklistRepository) hash(raw string) string {
	m := hmac.New(sha256.New, []byte(r.Secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}

// Add idempotent: token yang sama tidak menggandakan baris.
func (r *TokenBlacklistRepository) Add(ctx context.Context, raw string, expiredAt time.Time) error {
	row := model.TokenBlacklistModel{
		TokenBlacklistToken:     r.hash(raw),
		TokenBlacklistExpiredAt: expiredAt.UTC(),
	}
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_blacklist_token"}}, DoNothing: true}).
		Create(&row).Error; err != nil {
		return errors.Wrap(err, "blacklist token")
	}
	return nil
}

func (r *TokenBlacklistRepository) IsBlacklisted(ctx context.Context, raw string) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&model.TokenBlacklistModel{}).
		Where("token_blacklist_token = ?", r.hash(raw)).
		Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "check blacklist")
	}
	return n > 0, nil
}

// PurgeExpired menghapus baris yang tokennya sudah kedaluwarsa.
func (r *TokenBlacklistRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("token_blacklist_expired_at <= ?", now.UTC()).
		Delete(&model.TokenBlacklistModel{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "purge blacklist")
	}
	return res.RowsAffected, nil
}
