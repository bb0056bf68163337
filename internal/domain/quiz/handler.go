package quiz

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

// Create godoc
// @Summary Create a quiz with nested questions and choices
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /quizzes [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", errs)
		return
	}

	q, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, q)
}

// List godoc
// @Summary List quizzes
// @Tags Quizzes
// @Produce json
// @Router /quizzes [get]
func (h *Handler) List(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	quizzes, meta, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list quizzes")
		return
	}
	response.Paginated(c, http.StatusOK, quizzes, meta)
}

// GetByID godoc
// @Summary Get a published quiz with its questions
// @Tags Quizzes
// @Produce json
// @Router /quizzes/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	q, err := h.service.GetPublished(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, q)
}

// GetByIDAdmin godoc
// @Summary Get any quiz, drafts included
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Router /admin/quizzes/{id} [get]
func (h *Handler) GetByIDAdmin(c *gin.Context) {
	q, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, q)
}

// Update godoc
// @Summary Update quiz metadata
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /quizzes/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	q, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, q)
}

// Delete godoc
// @Summary Delete a quiz with its questions and choices
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Router /quizzes/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Submit godoc
// @Summary Submit answers and get a graded result
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /quizzes/{id}/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", errs)
		return
	}

	result, err := h.service.Submit(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// MyResults godoc
// @Summary List the caller's quiz attempts
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Router /quizzes/results/me [get]
func (h *Handler) MyResults(c *gin.Context) {
	results, err := h.service.UserResults(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load results")
		return
	}
	response.Success(c, http.StatusOK, results)
}

// Stats godoc
// @Summary Attempt count and average score for a quiz
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Router /quizzes/{id}/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.QuizStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrQuizNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Quiz not found")
	case errors.Is(err, ErrInvalidCorrectRef),
		errors.Is(err, ErrUnknownQuestion),
		errors.Is(err, ErrChoiceMismatch):
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
