// file: internals/features/discipline/improvement_plans/model/improvement_plan_model.go
package model

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	studentModel "disiplinku_backend/internals/features/students/students/model"
)

type ImprovementPlanModel struct {
	ImprovementPlanID        uint `gorm:"primaryKey;autoIncrement;column:improvement_plan_id" json:"improvement_plan_id"`
	ImprovementPlanStudentID uint `gorm:"not null;index:idx_improvement_plans_student;column:improvement_plan_student_id" json:"improvement_plan_student_id"`

	ImprovementPlanTitle       string    `gorm:"type:varchar(255);not null;column:improvement_plan_title" json:"improvement_plan_title"`
	ImprovementPlanDescription *string   `gorm:"type:text;column:improvement_plan_description" json:"improvement_plan_description,omitempty"`
	ImprovementPlanStartDate   time.Time `gorm:"not null;column:improvement_plan_start_date" json:"improvement_plan_start_date"`
	ImprovementPlanEndDate     time.Time `gorm:"not null;column:improvement_plan_end_date" json:"improvement_plan_end_date"`

	// active | completed | cancelled
	ImprovementPlanStatus string `gorm:"type:varchar(16);not null;index:idx_improvement_plans_status;column:improvement_plan_status" json:"improvement_plan_status"`

	// JSON array bebas dari UI, mis. [{"goal":"...","done":false}]
	ImprovementPlanGoals    datatypes.JSON `gorm:"column:improvement_plan_goals" json:"improvement_plan_goals,omitempty"`
	ImprovementPlanProgress datatypes.JSON `gorm:"column:improvement_plan_progress" json:"improvement_plan_progress,omitempty"`

	ImprovementPlanCreatedBy *string   `gorm:"type:varchar(64);column:improvement_plan_created_by" json:"improvement_plan_created_by,omitempty"`
	ImprovementPlanCreatedAt time.Time `gorm:"not null;autoCreateTime;column:improvement_plan_created_at" json:"improvement_plan_created_at"`
	ImprovementPlanUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:improvement_plan_updated_at" json:"improvement_plan_updated_at"`

	Student *studentModel.StudentModel `gorm:"foreignKey:ImprovementPlanStudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ImprovementPlanModel) TableName() string { return "improvement_plans" }

func (m *ImprovementPlanModel) BeforeSave(tx *gorm.DB) error {
	if !m.ImprovementPlanStartDate.IsZero() && !m.ImprovementPlanEndDate.IsZero() &&
		m.ImprovementPlanEndDate.Before(m.ImprovementPlanStartDate) {
		return errors.New("improvement_plan_end_date must be >= improvement_plan_start_date")
	}
	if !m.ImprovementPlanStartDate.IsZero() {
		m.ImprovementPlanStartDate = m.ImprovementPlanStartDate.UTC()
	}
	if !m.ImprovementPlanEndDate.IsZero() {
		m.ImprovementPlanEndDate = m.ImprovementPlanEndDate.UTC()
	}
	return nil
}

type PlanFollowUpModel struct {
	PlanFollowUpID     uint      `gorm:"primaryKey;autoIncrement;column:plan_follow_up_id" json:"plan_follow_up_id"`
	PlanFollowUpPlanID uint      `gorm:"not null;index:idx_plan_follow_ups_plan;column:plan_follow_up_plan_id" json:"plan_follow_up_plan_id"`
	PlanFollowUpDate   time.Time `gorm:"not null;column:plan_follow_up_date" json:"plan_follow_up_date"`
	PlanFollowUpNotes  string    `gorm:"type:text;not null;column:plan_follow_up_notes" json:"plan_follow_up_notes"`
	// 1..5
	PlanFollowUpRating *int `gorm:"check:chk_plan_follow_ups_rating,plan_follow_up_rating IS NULL OR (plan_follow_up_rating BETWEEN 1 AND 5);column:plan_follow_up_rating" json:"plan_follow_up_rating,omitempty"`

	PlanFollowUpCreatedBy *string   `gorm:"type:varchar(64);column:plan_follow_up_created_by" json:"plan_follow_up_created_by,omitempty"`
	PlanFollowUpCreatedAt time.Time `gorm:"not null;autoCreateTime;column:plan_follow_up_created_at" json:"plan_follow_up_created_at"`

	Plan *ImprovementPlanModel `gorm:"foreignKey:PlanFollowUpPlanID;references:ImprovementPlanID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PlanFollowUpModel) TableName() string { return "plan_follow_ups" }

func (m *PlanFollowUpModel) BeforeSave(tx *gorm.DB) error {
	if !m.PlanFollowUpDate.IsZero() {
		m.PlanFollowUpDate = m.PlanFollowUpDate.UTC()
	}
	return nil
}
