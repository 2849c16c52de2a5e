package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentCtl "disiplinku_backend/internals/features/students/students/controller"
	helper "disiplinku_backend/internals/helpers"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

// StudentRoutes: semua user login. Sub-resource (/students/:id/violations, dst.)
// didaftarkan oleh fitur masing-masing.
func StudentRoutes(api fiber.Router, db *gorm.DB, store helperOSS.BlobService) {
	ctl := studentCtl.NewStudentController(db, helper.Validator(), store)

	g := api.Group("/students")
	g.Get("/", ctl.Search)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
