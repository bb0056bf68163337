package news

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the read-only news routes.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	n := r.Group("/news")
	{
		n.GET("", h.List)
		n.GET("/:id", h.GetByID)
		n.GET("/slug/:slug", h.GetBySlug)
	}
}

// RegisterAdminRoutes registers the mutating news routes.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	n := r.Group("/news")
	{
		n.POST("", h.Create)
		n.PATCH("/:id", h.Update)
		n.DELETE("/:id", h.Delete)
	}
}
