package repository

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"disiplinku_backend/internals/features/home/notifications/model"
)

// NotificationRow: notifikasi + nama siswa terkait + nama pengirim.
type NotificationRow struct {
	model.NotificationModel
	StudentName *string `gorm:"column:student_name" json:"student_name,omitempty"`
	SenderName  *string `gorm:"column:sender_name" json:"sender_name,omitempty"`
}

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, m *model.NotificationModel) (uint, error) {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return 0, errors.Wrap(err, "create notification")
	}
	return m.NotificationID, nil
}

// CreateMany: satu batch insert (alert ke semua admin).
func (r *NotificationRepository) CreateMany(ctx context.Context, rows []model.NotificationModel) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.DB.WithContext(ctx).Create(&rows).Error; err != nil {
		return errors.Wrap(err, "create notifications")
	}
	return nil
}

// GetForUser: terbaru dulu.
func (r *NotificationRepository) GetForUser(ctx context.Context, userID string, onlyUnread bool) []NotificationRow {
	q := r.DB.WithContext(ctx).
		Table("notifications AS n").
		Select("n.*, s.student_name, u.user_name AS sender_name").
		Joins("LEFT JOIN students s ON s.student_id = n.notification_related_student_id").
		Joins("LEFT JOIN users u ON u.user_id = n.notification_sender_id").
		Where("n.notification_recipient_id = ?", userID)
	if onlyUnread {
		q = q.Where("n.notification_is_read = ?", false)
	}
	rows := make([]NotificationRow, 0)
	if err := q.
		Order("n.notification_created_at DESC, n.notification_id DESC").
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] notifications user %s: %v", userID, err)
		return []NotificationRow{}
	}
	return rows
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) int64 {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_recipient_id = ? AND notification_is_read = ?", userID, false).
		Count(&n).Error; err != nil {
		log.Printf("[WARN] unread count %s: %v", userID, err)
		return 0
	}
	return n
}

// MarkRead hanya berlaku untuk penerima; 0 baris = tidak ditemukan / bukan milik user.
func (r *NotificationRepository) MarkRead(ctx context.Context, id uint, userID string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_recipient_id = ?", id, userID).
		Update("notification_is_read", true)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "mark notification read")
	}
	return res.RowsAffected, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_recipient_id = ? AND notification_is_read = ?", userID, false).
		Update("notification_is_read", true)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "mark all notifications read")
	}
	return res.RowsAffected, nil
}
