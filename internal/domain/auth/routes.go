package auth

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers login, registration and refresh.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	a := r.Group("/auth")
	{
		a.POST("/login", h.Login)
		a.POST("/register", h.Register)
		a.POST("/refresh", h.Refresh)
	}
}

// RegisterMemberRoutes registers the authenticated auth routes.
func RegisterMemberRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/auth/me", h.Me)
}
