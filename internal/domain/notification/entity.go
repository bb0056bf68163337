package notification

import "time"

// Device is a registered push target. Token is the FCM registration
// token and is unique across users: re-registering an existing token
// moves it to the new owner.
type Device struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Token     string    `gorm:"column:token;uniqueIndex" json:"token"`
	Platform  string    `gorm:"column:platform" json:"platform"`
	UserID    string    `gorm:"column:user_id;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Device) TableName() string { return "devices" }
