package library

import "time"

// Document is a library entry. FileURL and CoverImage hold relative
// storage paths; the physical bytes live under the configured upload
// root, in a directory named by the document id.
type Document struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Title        string    `gorm:"column:title" json:"title"`
	Description  *string   `gorm:"column:description" json:"description,omitempty"`
	FileType     string    `gorm:"column:file_type" json:"file_type"`
	FileURL      string    `gorm:"column:file_url" json:"file_url"`
	CoverImage   *string   `gorm:"column:cover_image" json:"cover_image,omitempty"`
	UploadedByID *string   `gorm:"column:uploaded_by_id" json:"uploaded_by_id,omitempty"`
	UploadedAt   time.Time `gorm:"column:uploaded_at;autoCreateTime" json:"uploaded_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }
