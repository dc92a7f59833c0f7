package middleware

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-tracker/internal/logging"
	"finance-tracker/internal/models"
)

// Recovery turns a panic in any handler into a generic 500 response
func Recovery(log logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.Error(c.Request.Context(), "panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Something went wrong!"})
	})
}
