package news

import "time"

// Article is a published news item. ImageURL holds the relative storage
// path; nil means no image is attached.
type Article struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Slug      string    `gorm:"column:slug;uniqueIndex" json:"slug"`
	Title     string    `gorm:"column:title" json:"title"`
	Excerpt   string    `gorm:"column:excerpt" json:"excerpt"`
	Content   string    `gorm:"column:content" json:"content"`
	Date      time.Time `gorm:"column:date" json:"date"`
	ImageURL  *string   `gorm:"column:image_url" json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Article) TableName() string { return "articles" }

func (a *Article) HasImage() bool {
	return a.ImageURL != nil && *a.ImageURL != ""
}
