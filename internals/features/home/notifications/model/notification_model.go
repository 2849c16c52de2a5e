package model

import (
	"time"

	studentModel "disiplinku_backend/internals/features/students/students/model"
)

type NotificationModel struct {
	NotificationID          uint   `gorm:"column:notification_id;primaryKey;autoIncrement" json:"notification_id"`
	NotificationRecipientID string `gorm:"column:notification_recipient_id;type:varchar(64);not null;index:idx_notifications_recipient" json:"notification_recipient_id"`
	// user id atau "system"
	NotificationSenderID string `gorm:"column:notification_sender_id;type:varchar(64);not null" json:"notification_sender_id"`
	// violation_alert | plan_update | general
	NotificationType    string `gorm:"column:notification_type;type:varchar(32);not null" json:"notification_type"`
	NotificationTitle   string `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationMessage string `gorm:"column:notification_message;type:text;not null" json:"notification_message"`

	NotificationRelatedStudentID *uint `gorm:"column:notification_related_student_id;index:idx_notifications_student" json:"notification_related_student_id"`
	NotificationIsRead           bool  `gorm:"column:notification_is_read;not null" json:"notification_is_read"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;not null;autoCreateTime" json:"notification_created_at"`

	RelatedStudent *studentModel.StudentModel `gorm:"foreignKey:NotificationRelatedStudentID;references:StudentID;constraint:OnDelete:SET NULL" json:"-"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
