// file: internals/features/discipline/violations/dto/violation_dto.go
package dto

import (
	"github.com/gofiber/fiber/v2"

	"disiplinku_backend/internals/features/discipline/violations/repository"
	helper "disiplinku_backend/internals/helpers"
	"disiplinku_backend/internals/helpers/dbtime"
)

// Poin tidak pernah dikirim client; disalin dari jenis pelanggaran.
type CreateViolationRequest struct {
	ViolationStudentID   uint    `json:"violation_student_id" validate:"required"`
	ViolationTypeID      uint    `json:"violation_type_id" validate:"required"`
	ViolationDate        string  `json:"violation_date" validate:"required,flexdate"`
	ViolationLocation    *string `json:"violation_location" validate:"omitempty,max=200"`
	ViolationDescription *string `json:"violation_description"`
}

func (r *CreateViolationRequest) Normalize() {
	r.ViolationLocation = helper.StrPtr(r.ViolationLocation)
	r.ViolationDescription = helper.StrPtr(r.ViolationDescription)
}

func (r *CreateViolationRequest) ToInput(createdBy *string) (repository.RecordInput, error) {
	date, err := dbtime.ParseDate(r.ViolationDate, nil)
	if err != nil {
		return repository.RecordInput{}, fiber.NewError(fiber.StatusBadRequest, "violation_date tidak valid")
	}
	return repository.RecordInput{
		StudentID:   r.ViolationStudentID,
		TypeID:      r.ViolationTypeID,
		Date:        date,
		Location:    r.ViolationLocation,
		Description: r.ViolationDescription,
		CreatedBy:   createdBy,
	}, nil
}

// Hanya tanggal, lokasi, dan keterangan yang bisa diubah.
type UpdateViolationRequest struct {
	ViolationDate        *string `json:"violation_date" validate:"omitempty,flexdate"`
	ViolationLocation    *string `json:"violation_location" validate:"omitempty,max=200"`
	ViolationDescription *string `json:"violation_description"`
}

func (r *UpdateViolationRequest) BuildUpdateMap() (map[string]any, error) {
	up := map[string]any{}
	if t, err := dbtime.ParseDatePtr(r.ViolationDate, nil); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "violation_date tidak valid")
	} else if t != nil {
		up["violation_date"] = *t
	}
	if r.ViolationLocation != nil {
		up["violation_location"] = helper.StrPtr(r.ViolationLocation)
	}
	if r.ViolationDescription != nil {
		up["violation_description"] = helper.StrPtr(r.ViolationDescription)
	}
	return up, nil
}
