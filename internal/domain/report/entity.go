package report

import (
	"time"

	"gorm.io/gorm"
)

// Status represents the lifecycle of a citizen report
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusNew, StatusInProgress, StatusResolved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

// Report is an issue raised by a citizen. Photo holds the relative
// storage path of the attached picture, nil when none was sent.
type Report struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Title       string    `gorm:"column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	CategoryID  string    `gorm:"column:category_id" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Validated   bool      `gorm:"column:validated" json:"validated"`
	Address     string    `gorm:"column:address" json:"address"`
	Latitude    float64   `gorm:"column:latitude" json:"latitude"`
	Longitude   float64   `gorm:"column:longitude" json:"longitude"`
	Photo       *string   `gorm:"column:photo" json:"photo,omitempty"`
	Status      Status    `gorm:"column:status" json:"status"`
	CitizenID   *string   `gorm:"column:citizen_id" json:"citizen_id,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Report) TableName() string { return "reports" }

// Category groups reports; soft-deleted so existing reports keep their
// reference.
type Category struct {
	ID          string         `gorm:"column:id;primaryKey" json:"id"`
	Name        string         `gorm:"column:name" json:"name"`
	Description *string        `gorm:"column:description" json:"description,omitempty"`
	ReportCount int64          `gorm:"-" json:"report_count"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at" json:"-"`
}

func (Category) TableName() string { return "report_categories" }
