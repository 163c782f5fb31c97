package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/location")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.Get)
	}

	// === Admin Routes ===
	admin := group.Group("", adminMiddleware)
	{
		admin.PUT("", h.Update)
		admin.PUT("/pricing", h.SetPricing)
	}
}
