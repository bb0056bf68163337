package news

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cityportal/internal/pkg/response"
	"cityportal/internal/pkg/slug"
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
// @Summary Create a news article
// @Tags News
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Router /news [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", errs)
		return
	}

	var image *upload.File
	if fh, err := c.FormFile("image"); err == nil {
		saved, err := h.temp.Save("news", fh)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Could not store uploaded file")
			return
		}
		image = &saved
	}

	article, err := h.service.Create(c.Request.Context(), req, image)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, h.service.ToResponse(article))
}

// List godoc
// @Summary List news articles
// @Tags News
// @Produce json
// @Router /news [get]
func (h *Handler) List(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	articles, meta, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list articles")
		return
	}

	items := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		items = append(items, h.service.ToResponse(&articles[i]))
	}
	response.Paginated(c, http.StatusOK, items, meta)
}

// GetByID godoc
// @Summary Get an article by id
// @Tags News
// @Produce json
// @Router /news/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	article, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.ToResponse(article))
}

// GetBySlug godoc
// @Summary Get an article by slug
// @Tags News
// @Produce json
// @Router /news/slug/{slug} [get]
func (h *Handler) GetBySlug(c *gin.Context) {
	article, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.ToResponse(article))
}

// Update godoc
// @Summary Update an article
// @Tags News
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Router /news/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateArticleRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	var image *upload.File
	if fh, err := c.FormFile("image"); err == nil {
		saved, err := h.temp.Save("news", fh)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Could not store uploaded file")
			return
		}
		image = &saved
	}

	article, err := h.service.Update(c.Request.Context(), c.Param("id"), req, image)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.ToResponse(article))
}

// Delete godoc
// @Summary Delete an article
// @Tags News
// @Produce json
// @Security BearerAuth
// @Router /news/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrArticleNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Article not found")
	case errors.Is(err, ErrSlugConflict), errors.Is(err, slug.ErrExhausted):
		response.Error(c, http.StatusConflict, "CONFLICT", "Could not allocate a unique slug")
	case errors.Is(err, upload.ErrUnsupportedFileType):
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", err.Error())
	case errors.Is(err, upload.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
