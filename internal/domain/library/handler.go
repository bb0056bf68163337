package library

import (
	"errors"
	"fmt"
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
// @Summary Upload a document with an optional cover image
// @Tags Library
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Router /library [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", errs)
		return
	}

	primary := h.savePart(c, "file")
	cover := h.savePart(c, "cover")
	if c.IsAborted() {
		return
	}

	doc, err := h.service.Create(c.Request.Context(), req, primary, cover, middleware.UserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, h.service.ToResponse(doc))
}

// List godoc
// @Summary List documents
// @Tags Library
// @Produce json
// @Router /library [get]
func (h *Handler) List(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	docs, meta, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list documents")
		return
	}

	items := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		items = append(items, h.service.ToResponse(&docs[i]))
	}
	response.Paginated(c, http.StatusOK, items, meta)
}

// GetByID godoc
// @Summary Get a document by id
// @Tags Library
// @Produce json
// @Router /library/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	doc, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.ToResponse(doc))
}

// Download godoc
// @Summary Download the stored file as an attachment
// @Tags Library
// @Produce octet-stream
// @Router /library/{id}/file [get]
func (h *Handler) Download(c *gin.Context) {
	f, name, contentType, err := h.service.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Header("Content-Type", contentType)
	c.File(f.Name())
}

// Update godoc
// @Summary Update document title/description
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Router /library/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	doc, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.ToResponse(doc))
}

// Delete godoc
// @Summary Delete a document and its files
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Router /library/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// savePart moves a multipart part into the temp area; a missing part is
// simply absent (required-ness is the validator's concern).
func (h *Handler) savePart(c *gin.Context, field string) *upload.File {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	saved, err := h.temp.Save("library", fh)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Could not store uploaded file")
		c.Abort()
		return nil
	}
	return &saved
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDocumentNotFound), errors.Is(err, ErrNoFileAttached):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, upload.ErrMissingFile):
		response.Error(c, http.StatusBadRequest, "MISSING_FILE", "A document file is required")
	case errors.Is(err, upload.ErrUnsupportedFileType):
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", err.Error())
	case errors.Is(err, upload.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
