package main

import (
	"fmt"
	"os"

	redisclient "github.com/printforge/printforge-backend/internal/clients/redis"
	"github.com/printforge/printforge-backend/internal/config"
	"github.com/printforge/printforge-backend/internal/db"
	"github.com/printforge/printforge-backend/internal/handlers"
	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/server"
	"github.com/printforge/printforge-backend/internal/services"
)

func main() {
	// Logger
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

	// Config
	log.Info("Loading configuration from main...")
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Could not load configuration", "error", err)
	}

	// MySQL
	mysqlService, err := db.NewMySQLService(cfg, log)
	if err != nil {
		log.Fatal("MySQL init failed", "error", err)
	}
	if err := mysqlService.AutoMigrateAll(); err != nil {
		log.Fatal("MySQL schema migration failed", "error", err)
	}
	theDB := mysqlService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	colorRepo := repos.NewColorRepo(theDB, log)
	materialRepo := repos.NewMaterialRepo(theDB, log)
	materialTypeRepo := repos.NewMaterialTypeRepo(theDB, log)
	userFilamentRepo := repos.NewUserFilamentRepo(theDB, log)
	orderRepo := repos.NewOrderRepo(theDB, log)
	orderLinkRepo := repos.NewOrderLinkRepo(theDB, log)
	orderColorRepo := repos.NewOrderColorRepo(theDB, log)

	// Redis preview cache (optional)
	var previewCache services.PreviewCache
	if cfg.RedisAddr != "" {
		cache, err := redisclient.NewPreviewCache(log, cfg.RedisAddr)
		if err != nil {
			log.Warn("Redis preview cache unavailable, previews will not be cached", "error", err)
		} else {
			defer cache.Close()
			previewCache = cache
		}
	}

	// Services
	log.Info("Setting up services from main...")
	userService := services.NewUserService(theDB, log, userRepo)
	colorService := services.NewColorService(theDB, log, colorRepo)
	materialService := services.NewMaterialService(theDB, log, materialRepo)
	materialTypeService := services.NewMaterialTypeService(theDB, log, materialTypeRepo, materialRepo)
	userFilamentService := services.NewUserFilamentService(theDB, log, userFilamentRepo, userRepo, materialRepo)
	orderService := services.NewOrderService(theDB, log, orderRepo, orderLinkRepo, orderColorRepo)
	previewFetcher := services.NewPreviewFetcher(log)
	shopService := services.NewShopService(theDB, log, orderLinkRepo, previewFetcher, previewCache)
	migrationService := services.NewMigrationService(theDB, log, colorRepo, materialRepo, userRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	userHandler := handlers.NewUserHandler(log, userService)
	colorHandler := handlers.NewColorHandler(log, colorService)
	materialHandler := handlers.NewMaterialHandler(log, materialService)
	materialTypeHandler := handlers.NewMaterialTypeHandler(log, materialTypeService)
	userFilamentHandler := handlers.NewUserFilamentHandler(log, userFilamentService)
	orderHandler := handlers.NewOrderHandler(log, orderService)
	shopHandler := handlers.NewShopHandler(log, shopService)
	migrationHandler := handlers.NewMigrationHandler(log, migrationService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                 log,
		AllowOrigins:        cfg.AllowOrigins,
		UserHandler:         userHandler,
		ColorHandler:        colorHandler,
		MaterialHandler:     materialHandler,
		MaterialTypeHandler: materialTypeHandler,
		UserFilamentHandler: userFilamentHandler,
		OrderHandler:        orderHandler,
		ShopHandler:         shopHandler,
		MigrationHandler:    migrationHandler,
	})

	log.Info("Server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
