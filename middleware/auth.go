package middleware

import (
	"context"
	"net/http"
	"strings"

	"barberhub/models"
	"barberhub/services/session"
	"barberhub/utils"

	"github.com/gin-gonic/gin"
)

// SessionAuthMiddleware resolves the bearer token into a live session and
// places it on the gin context under "session". Requests without a valid,
// unexpired session are rejected.
func SessionAuthMiddleware(sessions session.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sessionID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session token"})
			return
		}

		sess, err := sessions.GetSession(context.Background(), sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}

		c.Set("session", sess)
		c.Next()
	}
}

// OwnerAuthMiddleware additionally requires an owner session whose bound
// business matches the :id route parameter, or an admin session.
func OwnerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if sess.Role == models.RoleAdmin {
			c.Next()
			return
		}
		if sess.Role != models.RoleOwner || sess.SubjectID != c.Param("id") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not authorized for this business"})
			return
		}
		c.Next()
	}
}

// SessionFromContext returns the session placed by SessionAuthMiddleware,
// or nil.
func SessionFromContext(c *gin.Context) *models.Session {
	v, ok := c.Get("session")
	if !ok {
		return nil
	}
	sess, _ := v.(*models.Session)
	return sess
}
