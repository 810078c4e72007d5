package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/printforge/printforge-backend/internal/logger"
)

// RequestLogger logs one line per request after the handler chain ran.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	requestLog := log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		if c.Writer.Status() >= 500 {
			requestLog.Error("request failed", fields...)
			return
		}
		requestLog.Info("request handled", fields...)
	}
}
