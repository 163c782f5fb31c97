package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	g.POST("/auth/login", h.Login)

	// === Authenticated Routes ===
	authed := g.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("/auth/logout", h.Logout)
		authed.GET("/me", h.Me)
		authed.PUT("/selection", h.Select)
		authed.DELETE("/selection", h.ClearSelection)
	}
}
