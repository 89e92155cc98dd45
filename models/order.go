package models

import (
	"time"
)

// Order cloth status pipeline values. Transitions are not forced to be
// forward-only; an authorized actor may set any valid value.
const (
	StatusPending   = "Pending"
	StatusWashing   = "Washing"
	StatusDrying    = "Drying"
	StatusIroning   = "Ironing"
	StatusReady     = "Ready"
	StatusCompleted = "Completed"
)

// OrderStatuses lists every valid cloth_status value in pipeline order.
var OrderStatuses = []string{
	StatusPending,
	StatusWashing,
	StatusDrying,
	StatusIroning,
	StatusReady,
	StatusCompleted,
}

// IsValidStatus reports whether s is a member of the cloth_status enum.
func IsValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order represents a laundry order placed by a user with a shop.
// The shop and branch references null out if the referenced entity is
// deleted; the order row itself survives.
type Order struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UserID              uint       `gorm:"not null;index" json:"user_id"`
	User                User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ShopID              *uint      `gorm:"index" json:"shop_id"`
	Shop                *Shop      `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	BranchID            *uint      `gorm:"index" json:"branch_id"`
	Branch              *Branch    `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	ClothStatus         string     `gorm:"not null;default:'Pending';index" json:"cloth_status"`
	Amount              float64    `gorm:"not null;default:0;check:amount >= 0" json:"amount"`
	DeliveryName        string     `json:"delivery_name"`
	DeliveryAddress     string     `json:"delivery_address"`
	DeliveryPhone       string     `json:"delivery_phone"`
	SpecialInstructions string     `json:"special_instructions"`
	PickupDate          *time.Time `json:"pickup_date"`
	DeliveryDate        *time.Time `json:"delivery_date"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
