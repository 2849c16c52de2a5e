package dto

import (
	"strings"

	"disiplinku_backend/internals/features/home/notifications/model"
)

type CreateNotificationRequest struct {
	NotificationRecipientID      string `json:"notification_recipient_id" validate:"required,max=64"`
	NotificationType             string `json:"notification_type" validate:"required,oneof=violation_alert plan_update general"`
	NotificationTitle            string `json:"notification_title" validate:"required,max=255"`
	NotificationMessage          string `json:"notification_message" validate:"required"`
	NotificationRelatedStudentID *uint  `json:"notification_related_student_id" validate:"omitempty,min=1"`
}

func (r *CreateNotificationRequest) Normalize() {
	r.NotificationRecipientID = strings.TrimSpace(r.NotificationRecipientID)
	r.NotificationType = strings.ToLower(strings.TrimSpace(r.NotificationType))
	r.NotificationTitle = strings.TrimSpace(r.NotificationTitle)
	r.NotificationMessage = strings.TrimSpace(r.NotificationMessage)
}

func (r *CreateNotificationRequest) ToModel(senderID string) *model.NotificationModel {
	return &model.NotificationModel{
		NotificationRecipientID:      r.NotificationRecipientID,
		NotificationSenderID:         senderID,
		NotificationType:             r.NotificationType,
		NotificationTitle:            r.NotificationTitle,
		NotificationMessage:          r.NotificationMessage,
		NotificationRelatedStudentID: r.NotificationRelatedStudentID,
	}
}
