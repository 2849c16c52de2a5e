package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/configs"
	"disiplinku_backend/internals/constants"
	activityService "disiplinku_backend/internals/features/home/activity_logs/service"
	"disiplinku_backend/internals/features/users/users/dto"
	"disiplinku_backend/internals/features/users/users/repository"
	helper "disiplinku_backend/internals/helpers"
	helperAuth "disiplinku_backend/internals/helpers/auth"
)

type UserController struct {
	DB       *gorm.DB
	Repo     *repository.UserRepository
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB, v *validator.Validate, cfg *configs.Config) *UserController {
	owner := ""
	if cfg != nil {
		owner = cfg.OwnerOpenID
	}
	return &UserController{DB: db, Repo: repository.NewUserRepository(db, owner), Validate: v}
}

// GET /api/users?q=
func (ctl *UserController) List(c *fiber.Ctx) error {
	return helper.JsonList(c, "ok", dto.FromModels(ctl.Repo.List(c.UserContext(), c.Query("q"))))
}

// GET /api/users/:id
func (ctl *UserController) GetByID(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	u := ctl.Repo.GetByID(c.UserContext(), id)
	if u == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(u))
}

// PATCH /api/users/:id/role
func (ctl *UserController) SetRole(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var req dto.UpdateUserRoleRequest
	if err := helper.BindAndValidate(c, ctl.Validate, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	if me, _ := helperAuth.GetUserIDFromToken(c); me == id && req.UserRole != constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Tidak bisa menurunkan role akun sendiri")
	}
	n, err := ctl.Repo.SetRole(c.UserContext(), id, req.UserRole)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	activityService.Record(c.UserContext(), ctl.DB, helperAuth.UserIDPtr(c),
		"set_user_role", constants.EntityUser, 0, fiber.Map{"user_id": id, "role": req.UserRole})

	return helper.JsonUpdated(c, "Role user berhasil diubah", dto.FromModel(ctl.Repo.GetByID(c.UserContext(), id)))
}
