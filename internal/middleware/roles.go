package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitlink/api/internal/models"
)

// RequireRoles rejects with 403 unless the authenticated user holds at
// least one of the given main roles.
func RequireRoles(roles ...models.MainRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		allowed := false
		for _, role := range roles {
			if user.HasRole(role) {
				allowed = true
				break
			}
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
