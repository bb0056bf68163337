package quiz

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the read-only quiz routes.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	q := r.Group("/quizzes")
	{
		q.GET("", h.List)
		q.GET("/:id", h.GetByID)
	}
}

// RegisterMemberRoutes registers routes for authenticated citizens.
func RegisterMemberRoutes(r *gin.RouterGroup, h *Handler) {
	q := r.Group("/quizzes")
	{
		q.POST("/:id/submit", h.Submit)
		q.GET("/results/me", h.MyResults)
	}
}

// RegisterAdminRoutes registers the administrative quiz routes.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	q := r.Group("/quizzes")
	{
		q.POST("", h.Create)
		q.GET("/:id", h.GetByIDAdmin)
		q.PATCH("/:id", h.Update)
		q.DELETE("/:id", h.Delete)
		q.GET("/:id/stats", h.Stats)
	}
}
