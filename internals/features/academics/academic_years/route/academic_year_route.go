package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	ayCtl "disiplinku_backend/internals/features/academics/academic_years/controller"
	helper "disiplinku_backend/internals/helpers"
	helperOSS "disiplinku_backend/internals/helpers/oss"
	authMiddleware "disiplinku_backend/internals/middlewares/auth"
)

// AcademicYearRoutes: baca untuk semua user login, tulis khusus admin.
func AcademicYearRoutes(api fiber.Router, db *gorm.DB, store helperOSS.BlobService) {
	ctl := ayCtl.NewAcademicYearController(db, helper.Validator(), store)
	admin := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("tahun ajaran"), constants.AdminOnly)

	g := api.Group("/academic-years")
	g.Get("/", ctl.GetAll)
	g.Get("/active", ctl.GetActive)
	g.Get("/:id", ctl.GetByID)

	g.Post("/", admin, ctl.Create)
	g.Patch("/:id", admin, ctl.Update)
	g.Post("/:id/activate", admin, ctl.SetActive)
	g.Delete("/:id", admin, ctl.Delete)
}
