package models

import (
	"time"
)

// User represents a platform account (customer or staff/admin)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"` // platform admin flag
	Profile      Profile   `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// Role returns the authorization role carried in the user's token
func (u *User) Role() string {
	if u.IsStaff {
		return "admin"
	}
	return "customer"
}
