// file: internals/features/discipline/violations/service/violation_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"net/mail"

	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/discipline/violations/model"
	"disiplinku_backend/internals/features/discipline/violations/repository"
	notifModel "disiplinku_backend/internals/features/home/notifications/model"
	notifRepo "disiplinku_backend/internals/features/home/notifications/repository"
	studentModel "disiplinku_backend/internals/features/students/students/model"
	userModel "disiplinku_backend/internals/features/users/users/model"
	"disiplinku_backend/internals/services/email"
)

const (
	AlertNone    = ""
	AlertWarning = "warning"
	AlertDanger  = "danger"
)

// AlertConfig: ambang poin kumulatif (ALERT_WARNING_POINTS / ALERT_DANGER_POINTS).
type AlertConfig struct {
	WarningPoints int
	DangerPoints  int
}

// Crossed mengembalikan level tertinggi yang baru saja dilewati (before < ambang <= after).
func (a AlertConfig) Crossed(before, after int64) string {
	crossed := func(threshold int) bool {
		return threshold > 0 && before < int64(threshold) && after >= int64(threshold)
	}
	switch {
	case crossed(a.DangerPoints):
		return AlertDanger
	case crossed(a.WarningPoints):
		return AlertWarning
	default:
		return AlertNone
	}
}

func (a AlertConfig) threshold(level string) int {
	if level == AlertDanger {
		return a.DangerPoints
	}
	return a.WarningPoints
}

type ViolationService struct {
	DB     *gorm.DB
	Repo   *repository.ViolationRepository
	Notifs *notifRepo.NotificationRepository
	Mailer email.Service
	Alerts AlertConfig
}

func NewViolationService(db *gorm.DB, mailer email.Service, alerts AlertConfig) *ViolationService {
	return &ViolationService{
		DB:     db,
		Repo:   repository.NewViolationRepository(db),
		Notifs: notifRepo.NewNotificationRepository(db),
		Mailer: mailer,
		Alerts: alerts,
	}
}

// Record mencatat pelanggaran lalu (setelah commit) memeriksa ambang poin.
func (s *ViolationService) Record(ctx context.Context, in repository.RecordInput) (*repository.ViolationRow, error) {
	m, err := s.Repo.Record(ctx, in)
	if err != nil {
		return nil, err
	}
	s.checkAlert(ctx, m)

	if row := s.Repo.GetByID(ctx, m.ViolationID); row != nil {
		return row, nil
	}
	return &repository.ViolationRow{ViolationModel: *m}, nil
}

// checkAlert: notifikasi violation_alert ke semua admin + email. Gagal → log saja.
func (s *ViolationService) checkAlert(ctx context.Context, v *model.ViolationModel) {
	total := s.Repo.StudentTotalPoints(ctx, v.ViolationStudentID)
	level := s.Alerts.Crossed(total-int64(v.ViolationPoints), total)
	if level == AlertNone {
		return
	}

	var st studentModel.StudentModel
	if err := s.DB.WithContext(ctx).First(&st, "student_id = ?", v.ViolationStudentID).Error; err != nil {
		log.Printf("[WARN] alert: load student %d: %v", v.ViolationStudentID, err)
		return
	}
	var admins []userModel.UserModel
	if err := s.DB.WithContext(ctx).
		Where("user_role = ?", constants.RoleAdmin).
		Order("user_id ASC").
		Find(&admins).Error; err != nil {
		log.Printf("[WARN] alert: list admins: %v", err)
		return
	}
	if len(admins) == 0 {
		return
	}

	title, body := alertText(level, st, total, s.Alerts.threshold(level))
	studentID := st.StudentID
	rows := make([]notifModel.NotificationModel, 0, len(admins))
	to := make([]mail.Address, 0, len(admins))
	for _, a := range admins {
		rows = append(rows, notifModel.NotificationModel{
			NotificationRecipientID:      a.UserID,
			NotificationSenderID:         constants.SenderSystem,
			NotificationType:             constants.NotificationViolationAlert,
			NotificationTitle:            title,
			NotificationMessage:          body,
			NotificationRelatedStudentID: &studentID,
		})
		if a.UserEmail != nil && *a.UserEmail != "" {
			to = append(to, mail.Address{Name: a.DisplayName(), Address: *a.UserEmail})
		}
	}
	if err := s.Notifs.CreateMany(ctx, rows); err != nil {
		log.Printf("[WARN] alert: create notifications: %v", err)
	}
	if s.Mailer != nil && len(to) > 0 {
		s.Mailer.SendMessages(&email.Message{To: to, Subject: title, TextContent: body})
	}
	log.Printf("[INFO] alert %s: siswa %d total %d poin", level, st.StudentID, total)
}

func alertText(level string, st studentModel.StudentModel, total int64, threshold int) (string, string) {
	title := "Peringatan poin pelanggaran"
	if level == AlertDanger {
		title = "Bahaya: poin pelanggaran tinggi"
	}
	body := fmt.Sprintf("%s (%s) telah mencapai %d poin pelanggaran (batas %d).",
		st.StudentName, st.StudentNumber, total, threshold)
	return title, body
}
