// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"disiplinku_backend/internals/configs"
	authRepo "disiplinku_backend/internals/features/users/auth/repository"
	helperOSS "disiplinku_backend/internals/helpers/oss"
	authMiddleware "disiplinku_backend/internals/middlewares/auth"
	routeDetails "disiplinku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	startTime = time.Now()

	BaseRoutes(app, db, cfg)

	// ===================== JWT + BLACKLIST =====================
	blacklist := authRepo.NewTokenBlacklistRepository(db, cfg.JWTSecret)
	protect := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              cfg.JWTSecret,
		BlacklistChecker:    blacklist.IsBlacklisted,
		AllowCookieFallback: true,
	})

	// ===================== AUTH =====================
	// Didaftarkan sebelum group /api supaya login tidak melewati protect.
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, cfg, protect)

	// ===================== DOKUMEN =====================
	store, err := helperOSS.NewBlobService(cfg)
	if err != nil {
		log.Printf("[WARN] storage dokumen %q gagal (%v), fallback ke lokal", cfg.DocumentStorage, err)
		store = helperOSS.NewLocalStore(cfg.DocumentDir, cfg.DocumentBaseURL)
	}
	if _, ok := store.(*helperOSS.LocalStore); ok {
		app.Static(cfg.DocumentBaseURL, cfg.DocumentDir)
	}

	// ===================== PRIVATE (token) =====================
	// Role admin dicek per route di masing-masing fitur.
	log.Println("[INFO] Setting up PRIVATE group...")
	api := app.Group("/api", protect)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Academic routes...")
	routeDetails.AcademicRoutes(api, db, store)

	log.Println("[INFO] Mounting Student routes...")
	routeDetails.StudentRoutes(api, db, store)

	log.Println("[INFO] Mounting Discipline routes...")
	routeDetails.DisciplineRoutes(api, db, cfg, store)

	log.Println("[INFO] Mounting Report routes...")
	routeDetails.ReportRoutes(api, db)

	log.Println("[INFO] Mounting Home routes...")
	routeDetails.HomeRoutes(api, db)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(api, db, cfg)
}
