package auth

import "github.com/gin-gonic/gin"

const (
	keySessionID = "sessionID"
	keyUserID    = "userID"
	keyUserName  = "userName"
	keyRole      = "role"
)

func getString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetSessionID returns the caller's session ID or empty string.
func GetSessionID(c *gin.Context) string {
	return getString(c, keySessionID)
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return getString(c, keyUserID)
}

func GetUserName(c *gin.Context) string {
	return getString(c, keyUserName)
}

func GetRole(c *gin.Context) string {
	return getString(c, keyRole)
}
