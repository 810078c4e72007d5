package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/services"
)

type MaterialTypeHandler struct {
	log                 *logger.Logger
	materialTypeService services.MaterialTypeService
}

func NewMaterialTypeHandler(log *logger.Logger, materialTypeService services.MaterialTypeService) *MaterialTypeHandler {
	return &MaterialTypeHandler{
		log:                 log.With("handler", "MaterialTypeHandler"),
		materialTypeService: materialTypeService,
	}
}

type createMaterialTypeRequest struct {
	Name string `json:"name"`
}

// GET /api/material_types
func (mth *MaterialTypeHandler) List(c *gin.Context) {
	materialTypes, err := mth.materialTypeService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, materialTypes)
}

// POST /api/material_types
func (mth *MaterialTypeHandler) Create(c *gin.Context) {
	var req createMaterialTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	mt, err := mth.materialTypeService.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, mt.ID)
}

// DELETE /api/material_types/:id
func (mth *MaterialTypeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material type id"})
		return
	}
	if err := mth.materialTypeService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
