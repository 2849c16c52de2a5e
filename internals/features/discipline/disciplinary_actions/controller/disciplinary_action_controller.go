package controller

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/discipline/disciplinary_actions/dto"
	"disiplinku_backend/internals/features/discipline/disciplinary_actions/repository"
	activityService "disiplinku_backend/internals/features/home/activity_logs/service"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

type DisciplinaryActionController struct {
	DB       *gorm.DB
	Repo     *repository.DisciplinaryActionRepository
	Store    helperOSS.BlobService
	Validate *validator.Validate
}

func NewDisciplinaryActionController(db *gorm.DB, v *validator.Validate, store helperOSS.BlobService) *DisciplinaryActionController {
	return &DisciplinaryActionController{
		DB:       db,
		Repo:     repository.NewDisciplinaryActionRepository(db),
		Store:    store,
		Validate: v,
	}
}

// GET /api/students/:id/actions
func (ctl *DisciplinaryActionController) GetByStudent(c *fiber.Ctx) error {
	studentID, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", ctl.Repo.GetByStudent(c.UserContext(), studentID))
}

// GET /api/disciplinary-actions/:id
func (ctl *DisciplinaryActionController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row := ctl.Repo.GetByID(c.UserContext(), id)
	if row == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Tindakan disiplin tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", row)
}

// POST /api/disciplinary-actions
func (ctl *DisciplinaryActionController) Create(c *fiber.Ctx) error {
	var req dto.CreateDisciplinaryActionRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	in, err := req.ToInput(helperAuth.UserIDPtr(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctl.Repo.Create(c.UserContext(), in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"create_disciplinary_action", constants.EntityDisciplinaryAction, m.DisciplinaryActionID,
		fiber.Map{"student_id": m.DisciplinaryActionStudentID, "type": m.DisciplinaryActionTypeNameSnapshot})

	return helper.JsonCreated(c, "Tindakan disiplin berhasil dicatat", ctl.Repo.GetByID(c.UserContext(), m.DisciplinaryActionID))
}

// POST /api/disciplinary-actions/:id/document (multipart: document | file)
func (ctl *DisciplinaryActionController) UploadDocument(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctl.Repo.GetByID(c.UserContext(), id) == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Tindakan disiplin tidak ditemukan")
	}
	fh, err := helperOSS.GetDocumentFile(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	url, err := helperOSS.UploadDocument(c.UserContext(), ctl.Store, fh, fmt.Sprintf("disciplinary-actions/%d", id))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	prev, err := ctl.Repo.SetDocumentURL(c.UserContext(), id, url)
	if err != nil {
		_ = ctl.Store.DeleteByPublicURL(c.UserContext(), url)
		return helper.FromFiberError(c, err)
	}
	if prev != nil && *prev != "" && *prev != url {
		if err := ctl.Store.DeleteByPublicURL(c.UserContext(), *prev); err != nil {
			log.Printf("[WARN] hapus dokumen lama %s: %v", *prev, err)
		}
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"upload_disciplinary_document", constants.EntityDisciplinaryAction, id, fiber.Map{"url": url})

	return helper.JsonUpdated(c, "Dokumen berhasil diunggah", ctl.Repo.GetByID(c.UserContext(), id))
}

// DELETE /api/disciplinary-actions/:id
func (ctl *DisciplinaryActionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row := ctl.Repo.GetByID(c.UserContext(), id)
	if row == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Tindakan disiplin tidak ditemukan")
	}
	n, err := ctl.Repo.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tindakan disiplin tidak ditemukan")
	}
	if u := row.DisciplinaryActionDocumentURL; u != nil && *u != "" {
		if err := ctl.Store.DeleteByPublicURL(c.UserContext(), *u); err != nil {
			log.Printf("[WARN] hapus dokumen %s: %v", *u, err)
		}
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"delete_disciplinary_action", constants.EntityDisciplinaryAction, id, nil)

	return helper.JsonDeleted(c, "Tindakan disiplin berhasil dihapus", fiber.Map{"disciplinary_action_id": id})
}
