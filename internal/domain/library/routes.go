package library

import "github.com/gin-gonic/gin"

func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	l := r.Group("/library")
	{
		l.GET("", h.List)
		l.GET("/:id", h.GetByID)
		l.GET("/:id/file", h.Download)
	}
}

func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	l := r.Group("/library")
	{
		l.POST("", h.Create)
		l.PATCH("/:id", h.Update)
		l.DELETE("/:id", h.Delete)
	}
}
