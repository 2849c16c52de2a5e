package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/databases/dbtest"
	"disiplinku_backend/internals/features/discipline/violations/repository"
	"disiplinku_backend/internals/features/discipline/violations/service"
	notifModel "disiplinku_backend/internals/features/home/notifications/model"
	"disiplinku_backend/internals/services/email"
)

func TestAlertConfig_Crossed(t *testing.T) {
	a := service.AlertConfig{WarningPoints: 5, DangerPoints: 10}

	tests := []struct {
		name          string
		before, after int64
		want          string
	}{
		{"below warning", 0, 4, service.AlertNone},
		{"reach warning", 4, 5, service.AlertWarning},
		{"already past warning", 5, 7, service.AlertNone},
		{"reach danger", 7, 10, service.AlertDanger},
		{"jump over both", 3, 15, service.AlertDanger},
		{"already danger", 10, 20, service.AlertNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Crossed(tt.before, tt.after))
		})
	}

	assert.Equal(t, service.AlertNone, service.AlertConfig{}.Crossed(0, 100))
}

func TestViolationService_RecordCreatesAlertForAdmins(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	mailer := email.NewMockService()
	svc := service.NewViolationService(db, mailer, service.AlertConfig{WarningPoints: 5, DangerPoints: 10})
	ctx := context.Background()

	admin1 := fx.User("admin-1", constants.RoleAdmin)
	admin2 := fx.User("admin-2", constants.RoleAdmin)
	fx.User("staff-1", constants.RoleUser)

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g.GradeID, "أ"), "S-1", "أحمد")
	moderate := fx.ViolationType("الهروب من الحصص", constants.SeverityModerate, 3)

	record := func() *repository.ViolationRow {
		row, err := svc.Record(ctx, repository.RecordInput{
			StudentID: st.StudentID,
			TypeID:    moderate.ViolationTypeID,
			Date:      time.Now(),
			CreatedBy: &admin1.UserID,
		})
		require.NoError(t, err)
		return row
	}

	// 3 poin: belum ada alert
	row := record()
	assert.Equal(t, "أحمد", row.StudentName)
	assert.Equal(t, 3, row.ViolationPoints)
	assert.Empty(t, mailer.Messages())

	// 6 poin: warning untuk setiap admin
	record()
	var notifs []notifModel.NotificationModel
	require.NoError(t, db.Order("notification_recipient_id").Find(&notifs).Error)
	require.Len(t, notifs, 2)
	assert.Equal(t, admin1.UserID, notifs[0].NotificationRecipientID)
	assert.Equal(t, admin2.UserID, notifs[1].NotificationRecipientID)
	for _, n := range notifs {
		assert.Equal(t, constants.NotificationViolationAlert, n.NotificationType)
		assert.Equal(t, constants.SenderSystem, n.NotificationSenderID)
		require.NotNil(t, n.NotificationRelatedStudentID)
		assert.Equal(t, st.StudentID, *n.NotificationRelatedStudentID)
		assert.Contains(t, n.NotificationMessage, "6")
	}
	msgs := mailer.Messages()
	require.Len(t, msgs, 1)
	assert.Len(t, msgs[0].To, 2)

	// 9 poin: tidak ada ambang baru
	record()
	var count int64
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// 12 poin: danger
	record()
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)
	assert.Len(t, mailer.Messages(), 2)
}

func TestViolationService_RecordWithoutAdminsStillSucceeds(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	mailer := email.NewMockService()
	svc := service.NewViolationService(db, mailer, service.AlertConfig{WarningPoints: 1, DangerPoints: 2})

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g.GradeID, "أ"), "S-1", "أحمد")
	vt := fx.ViolationType("ارتكاب السرقة", constants.SeveritySevere, 10)

	row, err := svc.Record(context.Background(), repository.RecordInput{StudentID: st.StudentID, TypeID: vt.ViolationTypeID, Date: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, 10, row.ViolationPoints)
	assert.Empty(t, mailer.Messages())
}
