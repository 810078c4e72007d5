package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/services"
)

type UserFilamentHandler struct {
	log                 *logger.Logger
	userFilamentService services.UserFilamentService
}

func NewUserFilamentHandler(log *logger.Logger, userFilamentService services.UserFilamentService) *UserFilamentHandler {
	return &UserFilamentHandler{
		log:                 log.With("handler", "UserFilamentHandler"),
		userFilamentService: userFilamentService,
	}
}

type assignFilamentRequest struct {
	UserID     string `json:"userId"`
	MaterialID string `json:"materialId"`
	Quantity   int    `json:"quantity"`
}

type updateFilamentRequest struct {
	Quantity *int `json:"quantity"`
}

// POST /api/user_filaments
func (ufh *UserFilamentHandler) Assign(c *gin.Context) {
	var req assignFilamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	uf, err := ufh.userFilamentService.Assign(c.Request.Context(), services.AssignFilamentInput{
		UserID:     req.UserID,
		MaterialID: req.MaterialID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, uf.ID)
}

// GET /api/user_filaments?user_id=...
func (ufh *UserFilamentHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	filaments, err := ufh.userFilamentService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, filaments)
}

// PUT /api/user_filaments/:id
func (ufh *UserFilamentHandler) Update(c *gin.Context) {
	var req updateFilamentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}
	if err := ufh.userFilamentService.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/user_filaments/:id
func (ufh *UserFilamentHandler) Delete(c *gin.Context) {
	if err := ufh.userFilamentService.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
