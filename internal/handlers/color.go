package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/services"
)

type ColorHandler struct {
	log          *logger.Logger
	colorService services.ColorService
}

func NewColorHandler(log *logger.Logger, colorService services.ColorService) *ColorHandler {
	return &ColorHandler{
		log:          log.With("handler", "ColorHandler"),
		colorService: colorService,
	}
}

type createColorRequest struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	Name         string  `json:"name"`
	Value        string  `json:"value"`
	FilamentLink *string `json:"filamentLink"`
}

type updateColorRequest struct {
	Name         *string `json:"name"`
	Value        *string `json:"value"`
	FilamentLink *string `json:"filamentLink"`
}

// POST /api/colors
func (ch *ColorHandler) Create(c *gin.Context) {
	var req createColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	err := ch.colorService.Create(c.Request.Context(), services.CreateColorInput{
		ID:           req.ID,
		UserID:       req.UserID,
		Name:         req.Name,
		Value:        req.Value,
		FilamentLink: req.FilamentLink,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, req.ID)
}

// GET /api/colors?user_id=...
func (ch *ColorHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	colors, err := ch.colorService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, colors)
}

// GET /api/colors/:id
func (ch *ColorHandler) Get(c *gin.Context) {
	color, err := ch.colorService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, color)
}

// PUT /api/colors/:id
func (ch *ColorHandler) Update(c *gin.Context) {
	var req updateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	err := ch.colorService.Update(c.Request.Context(), c.Param("id"), services.UpdateColorInput{
		Name:         req.Name,
		Value:        req.Value,
		FilamentLink: req.FilamentLink,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/colors/:id
func (ch *ColorHandler) Delete(c *gin.Context) {
	if err := ch.colorService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
