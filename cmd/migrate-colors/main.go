package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/printforge/printforge-backend/internal/config"
	"github.com/printforge/printforge-backend/internal/db"
	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/services"
)

// One-shot backfill of legacy colors into the materials table. The same
// operation is exposed over HTTP; this entrypoint exists for running it from
// a shell or a cron job without a live server.
func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Could not load configuration", "error", err)
	}

	mysqlService, err := db.NewMySQLService(cfg, log)
	if err != nil {
		log.Fatal("MySQL init failed", "error", err)
	}
	if err := mysqlService.AutoMigrateAll(); err != nil {
		log.Fatal("MySQL schema migration failed", "error", err)
	}
	theDB := mysqlService.DB()

	userRepo := repos.NewUserRepo(theDB, log)
	colorRepo := repos.NewColorRepo(theDB, log)
	materialRepo := repos.NewMaterialRepo(theDB, log)
	migrationService := services.NewMigrationService(theDB, log, colorRepo, materialRepo, userRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	summary, err := migrationService.MigrateColors(ctx)
	if err != nil {
		log.Fatal("Color migration failed", "error", err)
	}

	log.Info("Color migration finished",
		"migrated", summary.Migrated,
		"skipped", summary.Skipped,
		"users", len(summary.Users),
		"message", summary.Message,
	)
}
