package models

import (
	"time"
)

// Branch is a physical location belonging to a Shop. Branch names are
// unique within their shop; deleting a branch removes its services.
type Branch struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopID    uint      `gorm:"not null;index;uniqueIndex:idx_shop_branch_name" json:"shop_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_shop_branch_name" json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Services  []Service `gorm:"foreignKey:BranchID" json:"services,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}
