package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	admin := g.Group("/admin", authMiddleware, adminMiddleware)
	{
		admin.GET("/export", h.Export)
	}
}
