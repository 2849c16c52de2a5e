package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/configs"
	ActionTypeRoutes "disiplinku_backend/internals/features/discipline/action_types/route"
	DisciplinaryActionRoutes "disiplinku_backend/internals/features/discipline/disciplinary_actions/route"
	ImprovementPlanRoutes "disiplinku_backend/internals/features/discipline/improvement_plans/route"
	ViolationTypeRoutes "disiplinku_backend/internals/features/discipline/violation_types/route"
	ViolationRoutes "disiplinku_backend/internals/features/discipline/violations/route"
	violationService "disiplinku_backend/internals/features/discipline/violations/service"
	helperOSS "disiplinku_backend/internals/helpers/oss"
	"disiplinku_backend/internals/services/email"
)

// Contoh akses: /api/violations, /api/disciplinary-actions/:id/document
func DisciplineRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config, store helperOSS.BlobService) {
	ViolationTypeRoutes.ViolationTypeRoutes(api, db)
	ActionTypeRoutes.ActionTypeRoutes(api, db)

	ViolationRoutes.ViolationRoutes(api, db, email.New(cfg), violationService.AlertConfig{
		WarningPoints: cfg.AlertWarningPoints,
		DangerPoints:  cfg.AlertDangerPoints,
	})
	DisciplinaryActionRoutes.DisciplinaryActionRoutes(api, db, store)
	ImprovementPlanRoutes.ImprovementPlanRoutes(api, db)
}
