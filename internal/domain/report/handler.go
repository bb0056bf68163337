package report

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cityportal/internal/middleware"
	"cityportal/internal/pkg/response"
	"cityportal/internal/pkg/upload"
	"cityportal/internal/pkg/validator"
)

type Handler struct {
	service *Service
	temp    *upload.TempStore
}

func NewHandler(service *Service, temp *upload.TempStore) *Handler {
	return &Handler{service: service, temp: temp}
}

// Create godoc
// @Summary File a citizen report
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Router /reports [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", errs)
		return
	}

	var photo *upload.File
	if fh, err := c.FormFile("photo"); err == nil {
		saved, err := h.temp.Save("report", fh)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Could not store uploaded file")
			return
		}
		photo = &saved
	}

	rep, err := h.service.Create(c.Request.Context(), req, middleware.UserID(c), photo)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, h.service.ToResponse(rep))
}

// List godoc
// @Summary List reports
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Router /reports [get]
func (h *Handler) List(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	reports, meta, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	items := make([]ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, h.service.ToResponse(&reports[i]))
	}
	response.Paginated(c, http.StatusOK, items, meta)
}

// GetByID godoc
// @Summary Get a report by id
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Router /reports/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	rep, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.ToResponse(rep))
}

// Update godoc
// @Summary Update a report
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Router /reports/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateReportRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	var photo *upload.File
	if fh, err := c.FormFile("photo"); err == nil {
		saved, err := h.temp.Save("report", fh)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Could not store uploaded file")
			return
		}
		photo = &saved
	}

	rep, err := h.service.Update(c.Request.Context(), c.Param("id"), req, photo)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.ToResponse(rep))
}

// Delete godoc
// @Summary Delete a report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Router /reports/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// CreateCategory godoc
// @Summary Create a report category
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /reports/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", errs)
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat)
}

// ListCategories godoc
// @Summary List report categories with report counts
// @Tags Reports
// @Produce json
// @Router /reports/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// UpdateCategory godoc
// @Summary Update a report category
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /reports/categories/{id} [patch]
func (h *Handler) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	cat, err := h.service.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat)
}

// DeleteCategory godoc
// @Summary Soft-delete a report category
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Router /reports/categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrReportNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Report not found")
	case errors.Is(err, ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Report category not found")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", err.Error())
	case errors.Is(err, upload.ErrUnsupportedFileType):
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", err.Error())
	case errors.Is(err, upload.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
