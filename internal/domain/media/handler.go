package media

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cityportal/internal/pkg/response"
	"cityportal/internal/pkg/upload"
	"cityportal/internal/storage"
)

type Handler struct {
	service *Service
	temp    *upload.TempStore
}

func NewHandler(service *Service, temp *upload.TempStore) *Handler {
	return &Handler{service: service, temp: temp}
}

// Upload godoc
// @Summary Upload images to object storage with an optimized rendition
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Router /media [post]
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	var files []*upload.File
	for _, fh := range form.File["files"] {
		saved, err := h.temp.Save("media", fh)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Could not store uploaded file")
			return
		}
		f := saved
		files = append(files, &f)
	}

	results, err := h.service.Upload(c.Request.Context(), files, c.PostForm("destination"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, results)
}

// Delete godoc
// @Summary Remove an object from storage
// @Tags Media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /media [delete]
func (h *Handler) Delete(c *gin.Context) {
	var req struct {
		Bucket string `json:"bucket" binding:"required"`
		Key    string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.Bucket, req.Key); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrStorageDisabled):
		response.Error(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Object storage is not configured")
	case errors.Is(err, upload.ErrMissingFile):
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "No files attached")
	case errors.Is(err, upload.ErrUnsupportedFileType),
		errors.Is(err, upload.ErrUnsupportedImageFormat):
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", err.Error())
	case errors.Is(err, upload.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, upload.ErrCorruptImageData), errors.Is(err, storage.ErrUploadFailed):
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Upload failed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
