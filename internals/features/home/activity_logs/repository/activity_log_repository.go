package repository

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"disiplinku_backend/internals/features/home/activity_logs/model"
)

type ActivityLogRow struct {
	model.ActivityLogModel
	UserName *string `gorm:"column:user_name" json:"user_name,omitempty"`
}

type ActivityLogRepository struct {
	DB *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

func (r *ActivityLogRepository) Create(ctx context.Context, m *model.ActivityLogModel) (uint, error) {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return 0, errors.Wrap(err, "create activity log")
	}
	return m.ActivityLogID, nil
}

func (r *ActivityLogRepository) base(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("activity_logs AS l").
		Select("l.*, u.user_name").
		Joins("LEFT JOIN users u ON u.user_id = l.activity_log_user_id")
}

// GetRecent: terbaru dulu.
func (r *ActivityLogRepository) GetRecent(ctx context.Context, limit int) []ActivityLogRow {
	if limit <= 0 {
		limit = 50
	}
	rows := make([]ActivityLogRow, 0)
	if err := r.base(ctx).
		Order("l.activity_log_created_at DESC, l.activity_log_id DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] activity logs recent: %v", err)
		return []ActivityLogRow{}
	}
	return rows
}

func (r *ActivityLogRepository) GetByEntity(ctx context.Context, entityType string, entityID uint) []ActivityLogRow {
	rows := make([]ActivityLogRow, 0)
	if err := r.base(ctx).
		Where("l.activity_log_entity_type = ? AND l.activity_log_entity_id = ?", entityType, entityID).
		Order("l.activity_log_created_at DESC, l.activity_log_id DESC").
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] activity logs by entity: %v", err)
		return []ActivityLogRow{}
	}
	return rows
}
