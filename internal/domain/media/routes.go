package media

import "github.com/gin-gonic/gin"

// RegisterAdminRoutes registers the object-storage media routes.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	m := r.Group("/media")
	{
		m.POST("", h.Upload)
		m.DELETE("", h.Delete)
	}
}
