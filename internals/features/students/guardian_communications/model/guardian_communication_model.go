package model

import (
	"time"

	studentModel "disiplinku_backend/internals/features/students/students/model"
)

type GuardianCommunicationModel struct {
	GuardianCommunicationID        uint      `gorm:"primaryKey;autoIncrement;column:guardian_communication_id" json:"guardian_communication_id"`
	GuardianCommunicationStudentID uint      `gorm:"not null;index:idx_guardian_comms_student;column:guardian_communication_student_id" json:"guardian_communication_student_id"`
	GuardianCommunicationDate      time.Time `gorm:"not null;column:guardian_communication_date" json:"guardian_communication_date"`

	// phone | meeting | letter | other
	GuardianCommunicationMethod  string  `gorm:"type:varchar(16);not null;column:guardian_communication_method" json:"guardian_communication_method"`
	GuardianCommunicationSubject string  `gorm:"type:varchar(255);not null;column:guardian_communication_subject" json:"guardian_communication_subject"`
	GuardianCommunicationNotes   *string `gorm:"type:text;column:guardian_communication_notes" json:"guardian_communication_notes,omitempty"`

	GuardianCommunicationFollowUpRequired bool `gorm:"not null;column:guardian_communication_follow_up_required" json:"guardian_communication_follow_up_required"`

	GuardianCommunicationCreatedBy *string   `gorm:"type:varchar(64);column:guardian_communication_created_by" json:"guardian_communication_created_by,omitempty"`
	GuardianCommunicationCreatedAt time.Time `gorm:"not null;autoCreateTime;column:guardian_communication_created_at" json:"guardian_communication_created_at"`

	Student *studentModel.StudentModel `gorm:"foreignKey:GuardianCommunicationStudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (GuardianCommunicationModel) TableName() string { return "guardian_communications" }
