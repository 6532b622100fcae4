package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/jwt"
	"catalog-backend/pkg/logger"
)

// Context keys set by AuthMiddleware
const (
	ContextKeySubject = "subject"
	ContextKeyRole    = "role"
)

// TokenValidator is implemented by *jwt.Manager
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware requires a valid "Bearer <token>" access token
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing authorization header")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization header format")
			return
		}

		claims, err := validator.ValidateAccessToken(token)
		if err != nil {
			logger.Info("rejected access token", map[string]interface{}{
				"request_id": c.GetString(ContextKeyRequestID),
				"reason":     err.Error(),
			})
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Set(ContextKeyRole, claims.Role)

		c.Next()
	}
}
