package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/transparency-backend/internal/platform/ctxutil"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

// TokenParser resolves a bearer token to the caller's identity.
type TokenParser interface {
	ParseToken(tokenString string) (*ctxutil.Identity, error)
}

type AuthMiddleware struct {
	log    *logger.Logger
	parser TokenParser
}

func NewAuthMiddleware(log *logger.Logger, parser TokenParser) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, parser: parser}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}
		identity, err := am.parser.ParseToken(tokenString)
		if err != nil || identity == nil {
			am.log.Debug("Rejected bearer token", "error", err)
			abortUnauthorized(c)
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"message": "unauthorized", "code": "unauthorized"},
	})
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
