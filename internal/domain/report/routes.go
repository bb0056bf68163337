package report

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the unauthenticated report routes.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/reports/categories", h.ListCategories)
}

// RegisterMemberRoutes registers routes for authenticated citizens.
func RegisterMemberRoutes(r *gin.RouterGroup, h *Handler) {
	rep := r.Group("/reports")
	{
		rep.POST("", h.Create)
		rep.GET("", h.List)
		rep.GET("/:id", h.GetByID)
	}
}

// RegisterAdminRoutes registers the administrative report routes.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	rep := r.Group("/reports")
	{
		rep.PATCH("/:id", h.Update)
		rep.DELETE("/:id", h.Delete)
		rep.POST("/categories", h.CreateCategory)
		rep.PATCH("/categories/:id", h.UpdateCategory)
		rep.DELETE("/categories/:id", h.DeleteCategory)
	}
}
