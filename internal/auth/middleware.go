package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionLookup reports whether a session is still logged in.
type SessionLookup interface {
	Exists(ctx context.Context, id string) bool
}

// AuthRequired validates the bearer token and that its session has not been logged out.
func AuthRequired(jwtManager *JWTManager, sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing Authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		if !sessions.Exists(c.Request.Context(), claims.SessionID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "session ended",
			})
			return
		}

		c.Set(keySessionID, claims.SessionID)
		c.Set(keyUserID, claims.UserID)
		c.Set(keyUserName, claims.Name)
		c.Set(keyRole, claims.Role)

		c.Next()
	}
}
