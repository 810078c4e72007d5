package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/printforge/printforge-backend/internal/handlers"
	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/middleware"
)

type RouterConfig struct {
	Log                 *logger.Logger
	AllowOrigins        []string
	UserHandler         *handlers.UserHandler
	ColorHandler        *handlers.ColorHandler
	MaterialHandler     *handlers.MaterialHandler
	MaterialTypeHandler *handlers.MaterialTypeHandler
	UserFilamentHandler *handlers.UserFilamentHandler
	OrderHandler        *handlers.OrderHandler
	ShopHandler         *handlers.ShopHandler
	MigrationHandler    *handlers.MigrationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Users
		api.POST("/users", cfg.UserHandler.Register)
		api.GET("/users", cfg.UserHandler.List)
		api.GET("/users/:id", cfg.UserHandler.Get)
		api.PUT("/users/:id", cfg.UserHandler.Update)
		api.DELETE("/users/:id", cfg.UserHandler.Delete)
		api.POST("/users/:id/rating", cfg.UserHandler.Rate)

		// Colors (legacy inventory)
		api.POST("/colors", cfg.ColorHandler.Create)
		api.GET("/colors", cfg.ColorHandler.List)
		api.GET("/colors/:id", cfg.ColorHandler.Get)
		api.PUT("/colors/:id", cfg.ColorHandler.Update)
		api.DELETE("/colors/:id", cfg.ColorHandler.Delete)

		// Materials
		api.POST("/materials", cfg.MaterialHandler.Create)
		api.GET("/materials", cfg.MaterialHandler.List)
		api.GET("/materials/:id", cfg.MaterialHandler.Get)
		api.PUT("/materials/:id", cfg.MaterialHandler.Update)
		api.DELETE("/materials/:id", cfg.MaterialHandler.Delete)

		// Material types
		api.GET("/material_types", cfg.MaterialTypeHandler.List)
		api.POST("/material_types", cfg.MaterialTypeHandler.Create)
		api.DELETE("/material_types/:id", cfg.MaterialTypeHandler.Delete)

		// User filament inventory
		api.POST("/user_filaments", cfg.UserFilamentHandler.Assign)
		api.GET("/user_filaments", cfg.UserFilamentHandler.List)
		api.PUT("/user_filaments/:id", cfg.UserFilamentHandler.Update)
		api.DELETE("/user_filaments/:id", cfg.UserFilamentHandler.Delete)

		// Orders
		api.POST("/orders", cfg.OrderHandler.Create)
		api.GET("/orders", cfg.OrderHandler.List)
		api.GET("/orders/:id", cfg.OrderHandler.Get)
		api.PUT("/orders/:id", cfg.OrderHandler.Update)
		api.DELETE("/orders/:id", cfg.OrderHandler.Delete)
		api.PATCH("/orders/:id/links/:linkId/printed", cfg.OrderHandler.MarkLinkPrinted)

		// Shop
		api.GET("/shop", cfg.ShopHandler.PrintedModels)
		api.POST("/shop", cfg.ShopHandler.Preview)

		// One-shot colors to filaments backfill
		api.POST("/migrate_colors", cfg.MigrationHandler.MigrateColors)
	}

	return router
}
