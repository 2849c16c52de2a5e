package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AcademicYearRoutes "disiplinku_backend/internals/features/academics/academic_years/route"
	GradeRoutes "disiplinku_backend/internals/features/academics/grades/route"
	SectionRoutes "disiplinku_backend/internals/features/academics/sections/route"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

// Contoh akses: /api/academic-years, /api/grades/:id/sections
func AcademicRoutes(api fiber.Router, db *gorm.DB, store helperOSS.BlobService) {
	AcademicYearRoutes.AcademicYearRoutes(api, db, store)
	GradeRoutes.GradeRoutes(api, db, store)
	SectionRoutes.SectionRoutes(api, db)
}
