package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/services"
)

type MigrationHandler struct {
	log              *logger.Logger
	migrationService services.MigrationService
}

func NewMigrationHandler(log *logger.Logger, migrationService services.MigrationService) *MigrationHandler {
	return &MigrationHandler{
		log:              log.With("handler", "MigrationHandler"),
		migrationService: migrationService,
	}
}

// POST /api/migrate_colors
func (mh *MigrationHandler) MigrateColors(c *gin.Context) {
	summary, err := mh.migrationService.MigrateColors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
