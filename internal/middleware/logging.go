package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finance-tracker/internal/logging"
)

// RequestLogger logs every request once it has been handled
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if userID, ok := UserID(c); ok {
			args = append(args, "user_id", userID)
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			log.Error(ctx, "processed request", args...)
		case status >= http.StatusBadRequest:
			log.Warn(ctx, "processed request", args...)
		default:
			log.Info(ctx, "processed request", args...)
		}
	}
}
