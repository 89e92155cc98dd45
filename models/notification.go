package models

import (
	"time"
)

// Notification types emitted by the order lifecycle.
const (
	NotificationOrderPlaced  = "order_placed"
	NotificationStatusUpdate = "status_update"
	NotificationReadyPickup  = "ready_pickup"
	NotificationCompleted    = "completed"
)

// Notification is an append-only record surfaced to a user for order
// lifecycle events. Rows are only ever created or marked read.
// The (user_id, title) unique index backs the atomic get-or-create
// used by the status fan-out, so re-saving a status cannot duplicate
// its notification even under concurrent writes.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_notification_title" json:"user_id"`
	Title     string    `gorm:"not null;uniqueIndex:idx_user_notification_title" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Type      string    `gorm:"not null;default:'status_update'" json:"type"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
