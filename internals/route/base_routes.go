package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/configs"
	database "disiplinku_backend/internals/databases"
	ayRepo "disiplinku_backend/internals/features/academics/academic_years/repository"
)

const healthPingTimeout = 2 * time.Second

// BaseRoutes: banner dan /health (DB ping + tahun ajaran aktif).
func BaseRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	years := ayRepo.NewAcademicYearRepository(db)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(cfg.AppName + " API berjalan 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
		defer cancel()

		began := time.Now()
		if err := database.PingContext(ctx, db); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "DOWN",
				"database": "Database connection error",
				"uptime_s": int(time.Since(startTime).Seconds()),
			})
		}
		latency := time.Since(began)

		var activeYear any
		if y := years.GetActive(ctx); y != nil {
			activeYear = y.AcademicYearName
		}

		return c.JSON(fiber.Map{
			"status":      "OK",
			"database":    "Connected",
			"db_latency":  latency.String(),
			"env":         cfg.Env,
			"timezone":    cfg.Location().String(),
			"active_year": activeYear,
			"server_time": time.Now().In(cfg.Location()).Format(time.RFC3339),
			"uptime_s":    int(time.Since(startTime).Seconds()),
		})
	})
}
