package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/quote", authMiddleware, h.Quote)

	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/activity", h.Activity)
		group.POST("", h.Create)
		group.POST("/:id/cancel", h.Cancel)
	}
}
