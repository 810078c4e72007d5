package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/printforge-backend/internal/services"
)

// respondError maps service sentinel errors onto HTTP statuses. Anything not
// wrapped in a sentinel is treated as an internal error.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondCreated(c *gin.Context, id any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}
