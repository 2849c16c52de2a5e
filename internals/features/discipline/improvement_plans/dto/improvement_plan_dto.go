// file: internals/features/discipline/improvement_plans/dto/improvement_plan_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/discipline/improvement_plans/model"
	helper "disiplinku_backend/internals/helpers"
	"disiplinku_backend/internals/helpers/dbtime"
)

/* =======================================================
   IMPROVEMENT PLAN
   ======================================================= */

type CreateImprovementPlanRequest struct {
	ImprovementPlanStudentID   uint           `json:"improvement_plan_student_id" validate:"required"`
	ImprovementPlanTitle       string         `json:"improvement_plan_title" validate:"required,max=255"`
	ImprovementPlanDescription *string        `json:"improvement_plan_description"`
	ImprovementPlanStartDate   string         `json:"improvement_plan_start_date" validate:"required,flexdate"`
	ImprovementPlanEndDate     string         `json:"improvement_plan_end_date" validate:"required,flexdate"`
	ImprovementPlanStatus      string         `json:"improvement_plan_status" validate:"omitempty,oneof=active completed cancelled"`
	ImprovementPlanGoals       datatypes.JSON `json:"improvement_plan_goals"`
	ImprovementPlanProgress    datatypes.JSON `json:"improvement_plan_progress"`
}

func (r *CreateImprovementPlanRequest) Normalize() {
	r.ImprovementPlanTitle = strings.TrimSpace(r.ImprovementPlanTitle)
	r.ImprovementPlanDescription = helper.StrPtr(r.ImprovementPlanDescription)
	r.ImprovementPlanStatus = strings.ToLower(strings.TrimSpace(r.ImprovementPlanStatus))
	if r.ImprovementPlanStatus == "" {
		r.ImprovementPlanStatus = constants.PlanStatusActive
	}
}

func (r *CreateImprovementPlanRequest) ToModel(createdBy *string) (*model.ImprovementPlanModel, error) {
	start, end, err := parseRange(r.ImprovementPlanStartDate, r.ImprovementPlanEndDate)
	if err != nil {
		return nil, err
	}
	return &model.ImprovementPlanModel{
		ImprovementPlanStudentID:   r.ImprovementPlanStudentID,
		ImprovementPlanTitle:       r.ImprovementPlanTitle,
		ImprovementPlanDescription: r.ImprovementPlanDescription,
		ImprovementPlanStartDate:   start,
		ImprovementPlanEndDate:     end,
		ImprovementPlanStatus:      r.ImprovementPlanStatus,
		ImprovementPlanGoals:       r.ImprovementPlanGoals,
		ImprovementPlanProgress:    r.ImprovementPlanProgress,
		ImprovementPlanCreatedBy:   createdBy,
	}, nil
}

type UpdateImprovementPlanRequest struct {
	ImprovementPlanTitle       *string         `json:"improvement_plan_title" validate:"omitempty,min=1,max=255"`
	ImprovementPlanDescription *string         `json:"improvement_plan_description"`
	ImprovementPlanStartDate   *string         `json:"improvement_plan_start_date" validate:"omitempty,flexdate"`
	ImprovementPlanEndDate     *string         `json:"improvement_plan_end_date" validate:"omitempty,flexdate"`
	ImprovementPlanStatus      *string         `json:"improvement_plan_status" validate:"omitempty,oneof=active completed cancelled"`
	ImprovementPlanGoals       *datatypes.JSON `json:"improvement_plan_goals"`
	ImprovementPlanProgress    *datatypes.JSON `json:"improvement_plan_progress"`
}

func (r *UpdateImprovementPlanRequest) Normalize() {
	if r.ImprovementPlanTitle != nil {
		t := strings.TrimSpace(*r.ImprovementPlanTitle)
		r.ImprovementPlanTitle = &t
	}
	if r.ImprovementPlanStatus != nil {
		s := strings.ToLower(strings.TrimSpace(*r.ImprovementPlanStatus))
		r.ImprovementPlanStatus = &s
	}
}

// BuildUpdateMap: rentang tanggal dicek terhadap nilai gabungan (baru + lama).
func (r *UpdateImprovementPlanRequest) BuildUpdateMap(cur *model.ImprovementPlanModel) (map[string]any, error) {
	up := map[string]any{}
	start, end := cur.ImprovementPlanStartDate, cur.ImprovementPlanEndDate

	if t, err := dbtime.ParseDatePtr(r.ImprovementPlanStartDate, nil); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "improvement_plan_start_date tidak valid")
	} else if t != nil {
		start = *t
		up["improvement_plan_start_date"] = *t
	}
	if t, err := dbtime.ParseDatePtr(r.ImprovementPlanEndDate, nil); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "improvement_plan_end_date tidak valid")
	} else if t != nil {
		end = *t
		up["improvement_plan_end_date"] = *t
	}
	if end.Before(start) {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Tanggal selesai tidak boleh sebelum tanggal mulai")
	}

	if r.ImprovementPlanTitle != nil {
		up["improvement_plan_title"] = *r.ImprovementPlanTitle
	}
	if r.ImprovementPlanDescription != nil {
		up["improvement_plan_description"] = helper.StrPtr(r.ImprovementPlanDescription)
	}
	if r.ImprovementPlanStatus != nil {
		up["improvement_plan_status"] = *r.ImprovementPlanStatus
	}
	if r.ImprovementPlanGoals != nil {
		up["improvement_plan_goals"] = *r.ImprovementPlanGoals
	}
	if r.ImprovementPlanProgress != nil {
		up["improvement_plan_progress"] = *r.ImprovementPlanProgress
	}
	return up, nil
}

func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := dbtime.ParseDate(startRaw, nil)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "improvement_plan_start_date tidak valid")
	}
	end, err := dbtime.ParseDate(endRaw, nil)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "improvement_plan_end_date tidak valid")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusUnprocessableEntity, "Tanggal selesai tidak boleh sebelum tanggal mulai")
	}
	return start, end, nil
}

/* =======================================================
   FOLLOW-UP
   ======================================================= */

type CreatePlanFollowUpRequest struct {
	PlanFollowUpDate   string `json:"plan_follow_up_date" validate:"required,flexdate"`
	PlanFollowUpNotes  string `json:"plan_follow_up_notes" validate:"required"`
	PlanFollowUpRating *int   `json:"plan_follow_up_rating" validate:"omitempty,min=1,max=5"`
}

func (r *CreatePlanFollowUpRequest) Normalize() {
	r.PlanFollowUpNotes = strings.TrimSpace(r.PlanFollowUpNotes)
}

func (r *CreatePlanFollowUpRequest) ToModel(planID uint, createdBy *string) (*model.PlanFollowUpModel, error) {
	date, err := dbtime.ParseDate(r.PlanFollowUpDate, nil)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "plan_follow_up_date tidak valid")
	}
	return &model.PlanFollowUpModel{
		PlanFollowUpPlanID:    planID,
		PlanFollowUpDate:      date,
		PlanFollowUpNotes:     r.PlanFollowUpNotes,
		PlanFollowUpRating:    r.PlanFollowUpRating,
		PlanFollowUpCreatedBy: createdBy,
	}, nil
}
