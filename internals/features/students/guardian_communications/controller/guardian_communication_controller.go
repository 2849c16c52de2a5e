package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	activityService "disiplinku_backend/internals/features/home/activity_logs/service"
	"disiplinku_backend/internals/features/students/guardian_communications/dto"
	"disiplinku_backend/internals/features/students/guardian_communications/repository"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
)

type GuardianCommunicationController struct {
	DB       *gorm.DB
	Repo     *repository.GuardianCommunicationRepository
	Validate *validator.Validate
}

func NewGuardianCommunicationController(db *gorm.DB, v *validator.Validate) *GuardianCommunicationController {
	return &GuardianCommunicationController{DB: db, Repo: repository.NewGuardianCommunicationRepository(db), Validate: v}
}

// GET /api/students/:id/communications
func (ctl *GuardianCommunicationController) GetByStudent(c *fiber.Ctx) error {
	studentID, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", ctl.Repo.GetByStudent(c.UserContext(), studentID))
}

// POST /api/guardian-communications
func (ctl *GuardianCommunicationController) Create(c *fiber.Ctx) error {
	var req dto.CreateGuardianCommunicationRequest
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
		"create_guardian_communication", constants.EntityGuardianCommunication, id,
		fiber.Map{"student_id": m.GuardianCommunicationStudentID, "method": m.GuardianCommunicationMethod})

	return helper.JsonCreated(c, "Komunikasi wali berhasil dicatat", m)
}

// DELETE /api/guardian-communications/:id
func (ctl *GuardianCommunicationController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctl.Repo.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Komunikasi wali tidak ditemukan")
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"delete_guardian_communication", constants.EntityGuardianCommunication, id, nil)

	return helper.JsonDeleted(c, "Komunikasi wali berhasil dihapus", fiber.Map{"guardian_communication_id": id})
}
