package controller

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/discipline/improvement_plans/dto"
	"disiplinku_backend/internals/features/discipline/improvement_plans/repository"
	activityService "disiplinku_backend/internals/features/home/activity_logs/service"
	notifModel "disiplinku_backend/internals/features/home/notifications/model"
	notifRepo "disiplinku_backend/internals/features/home/notifications/repository"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
)

type ImprovementPlanController struct {
	DB       *gorm.DB
	Repo     *repository.ImprovementPlanRepository
	Notifs   *notifRepo.NotificationRepository
	Validate *validator.Validate
}

func NewImprovementPlanController(db *gorm.DB, v *validator.Validate) *ImprovementPlanController {
	return &ImprovementPlanController{
		DB:       db,
		Repo:     repository.NewImprovementPlanRepository(db),
		Notifs:   notifRepo.NewNotificationRepository(db),
		Validate: v,
	}
}

// GET /api/improvement-plans/active?academic_year_id=
func (ctl *ImprovementPlanController) ListActive(c *fiber.Ctx) error {
	yearID, err := helper.QueryUint(c, "academic_year_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", ctl.Repo.GetActive(c.UserContext(), yearID))
}

// GET /api/students/:id/plans
func (ctl *ImprovementPlanController) GetByStudent(c *fiber.Ctx) error {
	studentID, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", ctl.Repo.GetByStudent(c.UserContext(), studentID))
}

// GET /api/improvement-plans/:id (termasuk tindak lanjut)
func (ctl *ImprovementPlanController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row := ctl.Repo.GetByID(c.UserContext(), id)
	if row == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Rencana perbaikan tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"plan":       row,
		"follow_ups": ctl.Repo.GetFollowUps(c.UserContext(), id),
	})
}

// POST /api/improvement-plans
func (ctl *ImprovementPlanController) Create(c *fiber.Ctx) error {
	var req dto.CreateImprovementPlanRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := req.ToModel(helperAuth.UserIDPtr(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := ctl.Repo.Create(c.UserContext(), m)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"create_improvement_plan", constants.EntityImprovementPlan, id,
		fiber.Map{"student_id": m.ImprovementPlanStudentID, "title": m.ImprovementPlanTitle})

	return helper.JsonCreated(c, "Rencana perbaikan berhasil dibuat", ctl.Repo.GetByID(c.UserContext(), id))
}

// PATCH /api/improvement-plans/:id
func (ctl *ImprovementPlanController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateImprovementPlanRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	cur := ctl.Repo.GetByID(c.UserContext(), id)
	if cur == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Rencana perbaikan tidak ditemukan")
	}
	fields, err := req.BuildUpdateMap(&cur.ImprovementPlanModel)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if len(fields) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}
	if _, err := ctl.Repo.Update(c.UserContext(), id, fields); err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"update_improvement_plan", constants.EntityImprovementPlan, id, fields)

	if status, ok := fields["improvement_plan_status"].(string); ok && status != cur.ImprovementPlanStatus {
		ctl.notifyStatus(c, cur, status)
	}

	return helper.JsonUpdated(c, "Rencana perbaikan berhasil diperbarui", ctl.Repo.GetByID(c.UserContext(), id))
}

// notifyStatus: pembuat rencana diberi tahu kalau status diubah orang lain.
func (ctl *ImprovementPlanController) notifyStatus(c *fiber.Ctx, cur *repository.ImprovementPlanRow, status string) {
	owner := cur.ImprovementPlanCreatedBy
	actor := helperAuth.UserIDPtr(c)
	if owner == nil || *owner == "" || (actor != nil && *actor == *owner) {
		return
	}
	sender := "system"
	if actor != nil {
		sender = *actor
	}
	studentID := cur.ImprovementPlanStudentID
	n := &notifModel.NotificationModel{
		NotificationRecipientID:      *owner,
		NotificationSenderID:         sender,
		NotificationType:             constants.NotificationPlanUpdate,
		NotificationTitle:            "Status rencana perbaikan berubah",
		NotificationMessage:          fmt.Sprintf("Rencana \"%s\" untuk %s sekarang berstatus %s.", cur.ImprovementPlanTitle, cur.StudentName, status),
		NotificationRelatedStudentID: &studentID,
	}
	if _, err := ctl.Notifs.Create(c.UserContext(), n); err != nil {
		log.Printf("[WARN] notifikasi plan_update: %v", err)
	}
}

// DELETE /api/improvement-plans/:id
func (ctl *ImprovementPlanController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Rencana perbaikan tidak ditemukan")
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"delete_improvement_plan", constants.EntityImprovementPlan, id, nil)

	return helper.JsonDeleted(c, "Rencana perbaikan berhasil dihapus", fiber.Map{"improvement_plan_id": id})
}

/* =======================================================
   FOLLOW-UPS
   ======================================================= */

// GET /api/improvement-plans/:id/follow-ups
func (ctl *ImprovementPlanController) GetFollowUps(c *fiber.Ctx) error {
	planID, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", ctl.Repo.GetFollowUps(c.UserContext(), planID))
}

// POST /api/improvement-plans/:id/follow-ups
func (ctl *ImprovementPlanController) CreateFollowUp(c *fiber.Ctx) error {
	planID, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreatePlanFollowUpRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := req.ToModel(planID, helperAuth.UserIDPtr(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := ctl.Repo.CreateFollowUp(c.UserContext(), m)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"create_plan_follow_up", constants.EntityPlanFollowUp, id, fiber.Map{"plan_id": planID})

	return helper.JsonCreated(c, "Tindak lanjut berhasil dicatat", m)
}

// DELETE /api/improvement-plans/follow-ups/:id
func (ctl *ImprovementPlanController) DeleteFollowUp(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.DeleteFollowUp(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tindak lanjut tidak ditemukan")
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"delete_plan_follow_up", constants.EntityPlanFollowUp, id, nil)

	return helper.JsonDeleted(c, "Tindak lanjut berhasil dihapus", fiber.Map{"plan_follow_up_id": id})
}
