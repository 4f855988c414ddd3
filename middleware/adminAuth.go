package middleware

import (
	"net/http"

	"barberhub/models"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware requires an admin session. Must run after
// SessionAuthMiddleware.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess == nil || sess.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
