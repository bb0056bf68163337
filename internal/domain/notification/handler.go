package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cityportal/internal/middleware"
	"cityportal/internal/pkg/response"
	"cityportal/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterDevice godoc
// @Summary Register the caller's device token for push
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /devices [post]
func (h *Handler) RegisterDevice(c *gin.Context) {
	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", errs)
		return
	}

	device, err := h.service.RegisterDevice(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, device)
}

// UnregisterDevice godoc
// @Summary Remove the caller's device token
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Router /devices/{token} [delete]
func (h *Handler) UnregisterDevice(c *gin.Context) {
	err := h.service.UnregisterDevice(c.Request.Context(), middleware.UserID(c), c.Param("token"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ListDevices godoc
// @Summary List the caller's registered devices
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Router /devices [get]
func (h *Handler) ListDevices(c *gin.Context) {
	devices, err := h.service.ListDevices(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list devices")
		return
	}
	response.Success(c, http.StatusOK, devices)
}

// SendToToken godoc
// @Summary Push a message to one device token
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /notifications/token [post]
func (h *Handler) SendToToken(c *gin.Context) {
	var req SendToTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", errs)
		return
	}

	if err := h.service.SendToToken(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true})
}

// SendToUser godoc
// @Summary Push a message to all devices of a user
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /notifications/user [post]
func (h *Handler) SendToUser(c *gin.Context) {
	var req SendToUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", errs)
		return
	}

	result, err := h.service.SendToUser(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// SendToTopic godoc
// @Summary Push a message to a topic
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /notifications/topic [post]
func (h *Handler) SendToTopic(c *gin.Context) {
	var req SendToTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", errs)
		return
	}

	if err := h.service.SendToTopic(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDeviceNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Device not found")
	case errors.Is(err, ErrNoDevices):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User has no registered devices")
	case errors.Is(err, ErrMessagingUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "MESSAGING_UNAVAILABLE", "Push messaging is not configured")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
