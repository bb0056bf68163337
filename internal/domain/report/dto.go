package report

import (
	"time"

	"cityportal/internal/pkg/pagination"
)

type CreateReportRequest struct {
	Title       string  `form:"title" validate:"required"`
	Description string  `form:"description" validate:"required"`
	CategoryID  string  `form:"category_id" validate:"required"`
	Address     string  `form:"address" validate:"required"`
	Latitude    float64 `form:"latitude"`
	Longitude   float64 `form:"longitude"`
}

// UpdateReportRequest is admin-only; absent fields stay untouched.
type UpdateReportRequest struct {
	Title       *string  `form:"title"`
	Description *string  `form:"description"`
	CategoryID  *string  `form:"category_id"`
	Address     *string  `form:"address"`
	Latitude    *float64 `form:"latitude"`
	Longitude   *float64 `form:"longitude"`
	Status      *string  `form:"status"`
	Validated   *bool    `form:"validated"`
}

// SearchQuery: every present field contributes one AND clause.
type SearchQuery struct {
	pagination.Query
	Title      string `form:"title"`
	CategoryID string `form:"category_id"`
	Status     string `form:"status"`
	CitizenID  string `form:"citizen_id"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ReportResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  string    `json:"category_id"`
	Category    *Category `json:"category,omitempty"`
	Validated   bool      `json:"validated"`
	Address     string    `json:"address"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Photo       *string   `json:"photo,omitempty"`
	Status      Status    `json:"status"`
	CitizenID   *string   `json:"citizen_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
