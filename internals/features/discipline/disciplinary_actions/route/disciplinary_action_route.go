package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	actionCtl "disiplinku_backend/internals/features/discipline/disciplinary_actions/controller"
	helper "disiplinku_backend/internals/helpers"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

func DisciplinaryActionRoutes(api fiber.Router, db *gorm.DB, store helperOSS.BlobService) {
	ctl := actionCtl.NewDisciplinaryActionController(db, helper.Validator(), store)

	api.Get("/students/:id/actions", ctl.GetByStudent)

	g := api.Group("/disciplinary-actions")
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Post("/:id/document", ctl.UploadDocument)
	g.Delete("/:id", ctl.Delete)
}
