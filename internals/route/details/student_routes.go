package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	GuardianCommunicationRoutes "disiplinku_backend/internals/features/students/guardian_communications/route"
	studentRoute "disiplinku_backend/internals/features/students/students/route"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

func StudentRoutes(api fiber.Router, db *gorm.DB, store helperOSS.BlobService) {
	studentRoute.StudentRoutes(api, db, store)
	GuardianCommunicationRoutes.GuardianCommunicationRoutes(api, db)
}
