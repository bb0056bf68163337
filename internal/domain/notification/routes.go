package notification

import "github.com/gin-gonic/gin"

// RegisterMemberRoutes registers device management for authenticated
// users.
func RegisterMemberRoutes(r *gin.RouterGroup, h *Handler) {
	d := r.Group("/devices")
	{
		d.POST("", h.RegisterDevice)
		d.GET("", h.ListDevices)
		d.DELETE("/:token", h.UnregisterDevice)
	}
}

// RegisterAdminRoutes registers push-sending routes.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	n := r.Group("/notifications")
	{
		n.POST("/token", h.SendToToken)
		n.POST("/user", h.SendToUser)
		n.POST("/topic", h.SendToTopic)
	}
}
