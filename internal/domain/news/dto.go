package news

import (
	"time"

	"cityportal/internal/pkg/pagination"
)

// CreateArticleRequest is bound from the multipart form; the optional
// image part is handled separately by the handler.
type CreateArticleRequest struct {
	Title   string    `form:"title" validate:"required"`
	Excerpt string    `form:"excerpt" validate:"required"`
	Content string    `form:"content" validate:"required"`
	Date    time.Time `form:"date" time_format:"2006-01-02T15:04:05Z07:00" validate:"required"`
}

type UpdateArticleRequest struct {
	Title   *string    `form:"title"`
	Excerpt *string    `form:"excerpt"`
	Content *string    `form:"content"`
	Date    *time.Time `form:"date" time_format:"2006-01-02T15:04:05Z07:00"`
}

// SearchQuery carries the optional list filters; omitted fields impose
// no constraint.
type SearchQuery struct {
	pagination.Query
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	HasImage *bool  `form:"has_image"`
}

// ArticleResponse mirrors Article with the image path rewritten to a
// public URL.
type ArticleResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Meta     pagination.Meta   `json:"meta"`
}
