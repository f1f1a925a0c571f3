package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

// Recovery turns a handler panic into a 500 envelope and logs it.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if log != nil {
			log.Error("Handler panic", "method", c.Request.Method, "path", c.Request.URL.Path, "panic", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"message": "internal server error", "code": "internal_error"},
		})
	})
}
