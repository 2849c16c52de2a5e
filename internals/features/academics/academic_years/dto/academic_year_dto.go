// file: internals/features/academics/academic_years/dto/academic_year_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"disiplinku_backend/internals/features/academics/academic_years/model"
	"disiplinku_backend/internals/helpers/dbtime"
)

/* =======================================================
   REQUEST
   ======================================================= */

type CreateAcademicYearRequest struct {
	AcademicYearName      string `json:"academic_year_name" validate:"required,max=50"`
	AcademicYearStartDate string `json:"academic_year_start_date" validate:"required,flexdate"`
	AcademicYearEndDate   string `json:"academic_year_end_date" validate:"required,flexdate"`
	AcademicYearIsActive  bool   `json:"academic_year_is_active"`
}

func (r *CreateAcademicYearRequest) Normalize() {
	r.AcademicYearName = strings.TrimSpace(r.AcademicYearName)
	r.AcademicYearStartDate = strings.TrimSpace(r.AcademicYearStartDate)
	r.AcademicYearEndDate = strings.TrimSpace(r.AcademicYearEndDate)
}

func (r *CreateAcademicYearRequest) ToModel(createdBy *string) (*model.AcademicYearModel, error) {
	start, err := dbtime.ParseDate(r.AcademicYearStartDate, nil)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "academic_year_start_date tidak valid")
	}
	end, err := dbtime.ParseDate(r.AcademicYearEndDate, nil)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "academic_year_end_date tidak valid")
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return &model.AcademicYearModel{
		AcademicYearName:      r.AcademicYearName,
		AcademicYearStartDate: start,
		AcademicYearEndDate:   end,
		AcademicYearIsActive:  r.AcademicYearIsActive,
		AcademicYearCreatedBy: createdBy,
	}, nil
}

// PATCH: hanya field yang dikirim.
type UpdateAcademicYearRequest struct {
	AcademicYearName      *string `json:"academic_year_name" validate:"omitempty,min=1,max=50"`
	AcademicYearStartDate *string `json:"academic_year_start_date" validate:"omitempty,flexdate"`
	AcademicYearEndDate   *string `json:"academic_year_end_date" validate:"omitempty,flexdate"`
}

func (r *UpdateAcademicYearRequest) Normalize() {
	if r.AcademicYearName != nil {
		s := strings.TrimSpace(*r.AcademicYearName)
		r.AcademicYearName = &s
	}
}

// BuildUpdateMap memvalidasi rentang tanggal terhadap data lama.
func (r *UpdateAcademicYearRequest) BuildUpdateMap(cur *model.AcademicYearModel) (map[string]any, error) {
	up := map[string]any{}
	start, end := cur.AcademicYearStartDate, cur.AcademicYearEndDate

	if r.AcademicYearName != nil {
		up["academic_year_name"] = *r.AcademicYearName
	}
	if t, err := dbtime.ParseDatePtr(r.AcademicYearStartDate, nil); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "academic_year_start_date tidak valid")
	} else if t != nil {
		start = *t
		up["academic_year_start_date"] = start
	}
	if t, err := dbtime.ParseDatePtr(r.AcademicYearEndDate, nil); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "academic_year_end_date tidak valid")
	} else if t != nil {
		end = *t
		up["academic_year_end_date"] = end
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return up, nil
}

func checkRange(start, end time.Time) error {
	if end.Before(start) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Tanggal selesai tidak boleh sebelum tanggal mulai")
	}
	return nil
}
