package models

import (
	"time"
)

// Shop represents a laundry business tenant. Shops authenticate
// independently from platform users and must be approved by an admin
// before they can log in.
type Shop struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Latitude     string    `json:"latitude"`
	Longitude    string    `json:"longitude"`
	IsOpen       bool      `gorm:"not null;default:true" json:"is_open"`
	IsApproved   bool      `gorm:"not null;default:false" json:"is_approved"`
	Branches     []Branch  `gorm:"foreignKey:ShopID" json:"branches,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Shop model
func (Shop) TableName() string {
	return "shops"
}
