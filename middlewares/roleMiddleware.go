package middlewares

import (
	"net/http"

	"fixmycity-be/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles declares the permitted-role set for a route. It assumes
// AuthMiddleware already resolved the caller's role; a missing identity is
// treated as unauthenticated rather than forbidden.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	permitted := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		permitted[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			c.Abort()
			return
		}

		role, ok := roleVal.(models.Role)
		if !ok || !permitted[role] {
			c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to perform this action"})
			c.Abort()
			return
		}

		c.Next()
	}
}
