package models

import (
	"time"
)

// Profile holds per-user contact and location details.
// Exactly one profile exists per user; it is created in the same
// transaction as the user row at signup.
type Profile struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName           string    `gorm:"not null;default:'User'" json:"full_name"`
	Phone              string    `json:"phone"`
	City               string    `json:"city"`
	Latitude           string    `json:"latitude"`
	Longitude          string    `json:"longitude"`
	ImageS3Key         *string   `json:"image_s3_key"`
	ImageURL           *string   `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for image
	EmailNotifications bool      `gorm:"not null;default:true" json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}
