package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/services"
)

type MaterialHandler struct {
	log             *logger.Logger
	materialService services.MaterialService
}

func NewMaterialHandler(log *logger.Logger, materialService services.MaterialService) *MaterialHandler {
	return &MaterialHandler{
		log:             log.With("handler", "MaterialHandler"),
		materialService: materialService,
	}
}

type createMaterialRequest struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	Name         string  `json:"name"`
	Color        string  `json:"color"`
	MaterialType string  `json:"materialType"`
	ShopLink     *string `json:"shopLink"`
}

type updateMaterialRequest struct {
	Name         *string `json:"name"`
	Color        *string `json:"color"`
	MaterialType *string `json:"materialType"`
	ShopLink     *string `json:"shopLink"`
}

// POST /api/materials
func (mh *MaterialHandler) Create(c *gin.Context) {
	var req createMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	err := mh.materialService.Create(c.Request.Context(), services.CreateMaterialInput{
		ID:           req.ID,
		UserID:       req.UserID,
		Name:         req.Name,
		Color:        req.Color,
		MaterialType: req.MaterialType,
		ShopLink:     req.ShopLink,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, req.ID)
}

// GET /api/materials?user_id=...
func (mh *MaterialHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	materials, err := mh.materialService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

// GET /api/materials/:id
func (mh *MaterialHandler) Get(c *gin.Context) {
	material, err := mh.materialService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// PUT /api/materials/:id
func (mh *MaterialHandler) Update(c *gin.Context) {
	var req updateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	err := mh.materialService.Update(c.Request.Context(), c.Param("id"), services.UpdateMaterialInput{
		Name:         req.Name,
		Color:        req.Color,
		MaterialType: req.MaterialType,
		ShopLink:     req.ShopLink,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/materials/:id
func (mh *MaterialHandler) Delete(c *gin.Context) {
	if err := mh.materialService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
