package models

import (
	"time"
)

// Service is a named offering within a branch (e.g. "Dry Clean").
// Names are unique per branch; price is optional.
type Service struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BranchID  uint      `gorm:"not null;index;uniqueIndex:idx_branch_service_name" json:"branch_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_branch_service_name" json:"name"`
	Price     *float64  `json:"price"` // nullable, some services are quoted on drop-off
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
