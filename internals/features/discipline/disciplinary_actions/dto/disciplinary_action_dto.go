package dto

import (
	"github.com/gofiber/fiber/v2"

	"disiplinku_backend/internals/features/discipline/disciplinary_actions/repository"
	helper "disiplinku_backend/internals/helpers"
	"disiplinku_backend/internals/helpers/dbtime"
)

// Nama jenis tindakan disalin dari action type di repository.
type CreateDisciplinaryActionRequest struct {
	DisciplinaryActionStudentID   uint    `json:"disciplinary_action_student_id" validate:"required"`
	DisciplinaryActionTypeID      uint    `json:"disciplinary_action_type_id" validate:"required"`
	DisciplinaryActionViolationID *uint   `json:"disciplinary_action_violation_id" validate:"omitempty,gt=0"`
	DisciplinaryActionDate        string  `json:"disciplinary_action_date" validate:"required,flexdate"`
	DisciplinaryActionDescription *string `json:"disciplinary_action_description"`
}

func (r *CreateDisciplinaryActionRequest) Normalize() {
	r.DisciplinaryActionDescription = helper.StrPtr(r.DisciplinaryActionDescription)
}

func (r *CreateDisciplinaryActionRequest) ToInput(createdBy *string) (repository.CreateInput, error) {
	date, err := dbtime.ParseDate(r.DisciplinaryActionDate, nil)
	if err != nil {
		return repository.CreateInput{}, fiber.NewError(fiber.StatusBadRequest, "disciplinary_action_date tidak valid")
	}
	return repository.CreateInput{
		StudentID:   r.DisciplinaryActionStudentID,
		TypeID:      r.DisciplinaryActionTypeID,
		ViolationID: r.DisciplinaryActionViolationID,
		Date:        date,
		Description: r.DisciplinaryActionDescription,
		CreatedBy:   createdBy,
	}, nil
}
