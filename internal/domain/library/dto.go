package library

import (
	"cityportal/internal/pkg/pagination"
)

type CreateDocumentRequest struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
}

type UpdateDocumentRequest struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`
}

type SearchQuery struct {
	pagination.Query
	Title string `form:"title"`
}

// DocumentResponse mirrors Document with paths rewritten to public URLs.
type DocumentResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	FileType    string  `json:"file_type"`
	FileURL     string  `json:"file_url"`
	CoverImage  *string `json:"cover_image,omitempty"`
	UploadedBy  *string `json:"uploaded_by,omitempty"`
	UploadedAt  string  `json:"uploaded_at"`
}

type ListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Meta      pagination.Meta    `json:"meta"`
}
