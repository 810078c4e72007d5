package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/services"
)

type ShopHandler struct {
	log         *logger.Logger
	shopService services.ShopService
}

func NewShopHandler(log *logger.Logger, shopService services.ShopService) *ShopHandler {
	return &ShopHandler{
		log:         log.With("handler", "ShopHandler"),
		shopService: shopService,
	}
}

type previewRequest struct {
	URL string `json:"url"`
}

// GET /api/shop
func (sh *ShopHandler) PrintedModels(c *gin.Context) {
	models, err := sh.shopService.PrintedModels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models)
}

// POST /api/shop
func (sh *ShopHandler) Preview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := sh.shopService.Preview(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
