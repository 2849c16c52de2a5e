package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"disiplinku_backend/internals/configs"
	database "disiplinku_backend/internals/databases"
	authRepo "disiplinku_backend/internals/features/users/auth/repository"
	scheduler "disiplinku_backend/internals/features/users/auth/scheduler"
	"disiplinku_backend/internals/helpers/dbtime"
	middlewares "disiplinku_backend/internals/middlewares"
	routes "disiplinku_backend/internals/route"
	"disiplinku_backend/internals/services/reporting"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()
	dbtime.SetLocation(cfg.Location())

	reporting.Init(cfg.RollbarToken, cfg.Env, cfg.AppName)
	defer reporting.Close()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          middlewares.ErrorHandler,
		BodyLimit:             8 * 1024 * 1024, // upload dokumen maks 5MB + overhead multipart
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 DB connect + pool + migrasi + warm-up
	database.ConnectDB(cfg)
	database.TunePool()
	if cfg.DBAutoMigrate {
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("migrasi gagal: %v", err)
		}
	}
	database.WarmUpQueries()

	// ⏱ scheduler setelah DB siap
	bgCtx, stopBg := context.WithCancel(context.Background())
	defer stopBg()
	scheduler.StartBlacklistCleanupScheduler(bgCtx,
		authRepo.NewTokenBlacklistRepository(database.DB, cfg.JWTSecret),
		cfg.TokenCleanupInterval)

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, cfg)

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopBg()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
