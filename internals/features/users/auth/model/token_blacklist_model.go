package model

import "time"

// TokenBlacklistModel menyimpan HMAC access token yang sudah logout.
type TokenBlacklistModel struct {
	TokenBlacklistID        uint      `gorm:"primaryKey;autoIncrement;column:token_blacklist_id" json:"token_blacklist_id"`
	TokenBlacklistToken     string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_token_blacklists_token;column:token_blacklist_token" json:"-"`
	TokenBlacklistExpiredAt time.Time `gorm:"not null;index;column:token_blacklist_expired_at" json:"token_blacklist_expired_at"`
	TokenBlacklistCreatedAt time.Time `gorm:"not null;autoCreateTime;column:token_blacklist_created_at" json:"token_blacklist_created_at"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklists" }
