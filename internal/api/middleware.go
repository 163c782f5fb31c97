package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smartpark-backend/internal/auth"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/log"
	"github.com/nekogravitycat/smartpark-backend/internal/session"
)

// RequireAdmin ensures the authenticated session belongs to an admin.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if auth.GetRole(c) != string(session.RoleAdmin) {
			log.Warn(c.Request.Context(), "admin route refused",
				slog.String("user_id", userID),
				slog.String("path", c.FullPath()),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
