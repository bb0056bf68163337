package user

import "github.com/gin-gonic/gin"

// RegisterMemberRoutes registers self-service account routes.
func RegisterMemberRoutes(r *gin.RouterGroup, h *Handler) {
	r.PATCH("/users/me/password", h.ChangePassword)
}

// RegisterAdminRoutes registers user management routes.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	u := r.Group("/users")
	{
		u.POST("", h.Create)
		u.GET("", h.List)
		u.GET("/:id", h.GetByID)
		u.PATCH("/:id", h.Update)
		u.DELETE("/:id", h.Delete)
	}
}
