package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	gradeCtl "disiplinku_backend/internals/features/academics/grades/controller"
	helper "disiplinku_backend/internals/helpers"
	helperOSS "disiplinku_backend/internals/helpers/oss"
	authMiddleware "disiplinku_backend/internals/middlewares/auth"
)

func GradeRoutes(api fiber.Router, db *gorm.DB, store helperOSS.BlobService) {
	ctl := gradeCtl.NewGradeController(db, helper.Validator(), store)
	admin := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("kelas"), constants.AdminOnly)

	api.Get("/academic-years/:id/grades", ctl.GetByAcademicYear)

	g := api.Group("/grades")
	g.Get("/:id", ctl.GetByID)
	g.Post("/", admin, ctl.Create)
	g.Patch("/:id", admin, ctl.Update)
	g.Delete("/:id", admin, ctl.Delete)
}
