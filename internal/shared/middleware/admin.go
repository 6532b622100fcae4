package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/jwt"
)

// AdminMiddleware checks if the caller has the admin role.
// Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextKeyRole)
		if r, ok := role.(string); !ok || r != jwt.RoleAdmin {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: admin role required")
			return
		}

		c.Next()
	}
}
