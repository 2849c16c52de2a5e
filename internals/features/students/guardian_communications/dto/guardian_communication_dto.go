package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"disiplinku_backend/internals/features/students/guardian_communications/model"
	helper "disiplinku_backend/internals/helpers"
	"disiplinku_backend/internals/helpers/dbtime"
)

type CreateGuardianCommunicationRequest struct {
	GuardianCommunicationStudentID        uint    `json:"guardian_communication_student_id" validate:"required"`
	GuardianCommunicationDate             string  `json:"guardian_communication_date" validate:"required,flexdate"`
	GuardianCommunicationMethod           string  `json:"guardian_communication_method" validate:"required,oneof=phone meeting letter other"`
	GuardianCommunicationSubject          string  `json:"guardian_communication_subject" validate:"required,max=200"`
	GuardianCommunicationNotes            *string `json:"guardian_communication_notes"`
	GuardianCommunicationFollowUpRequired bool    `json:"guardian_communication_follow_up_required"`
}

func (r *CreateGuardianCommunicationRequest) Normalize() {
	r.GuardianCommunicationMethod = strings.ToLower(strings.TrimSpace(r.GuardianCommunicationMethod))
	r.GuardianCommunicationSubject = strings.TrimSpace(r.GuardianCommunicationSubject)
	r.GuardianCommunicationNotes = helper.StrPtr(r.GuardianCommunicationNotes)
}

func (r *CreateGuardianCommunicationRequest) ToModel(createdBy *string) (*model.GuardianCommunicationModel, error) {
	date, err := dbtime.ParseDate(r.GuardianCommunicationDate, nil)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "guardian_communication_date tidak valid")
	}
	return &model.GuardianCommunicationModel{
		GuardianCommunicationStudentID:        r.GuardianCommunicationStudentID,
		GuardianCommunicationDate:             date,
		GuardianCommunicationMethod:           r.GuardianCommunicationMethod,
		GuardianCommunicationSubject:          r.GuardianCommunicationSubject,
		GuardianCommunicationNotes:            r.GuardianCommunicationNotes,
		GuardianCommunicationFollowUpRequired: r.GuardianCommunicationFollowUpRequired,
		GuardianCommunicationCreatedBy:        createdBy,
	}, nil
}
