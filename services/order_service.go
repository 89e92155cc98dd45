package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/brightshine/laundry-api/models"
	"github.com/brightshine/laundry-api/utils"
)

// ErrInvalidStatus is returned when a submitted cloth_status value is
// not a member of the status enum. The order is left unchanged.
var ErrInvalidStatus = errors.New("invalid cloth status")

// ApplyStatus sets the order's cloth_status and emits the matching
// notification in a single transaction, so a failed notification write
// rolls the status change back. Re-applying the same status is a no-op
// for the notification (get-or-create keyed by user and title).
func ApplyStatus(db *gorm.DB, order *models.Order, newStatus string) error {
	if !models.IsValidStatus(newStatus) {
		return ErrInvalidStatus
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("cloth_status", newStatus).Error; err != nil {
			return err
		}

		// Pending has no per-status notification; the order_placed one
		// is emitted at creation time.
		if newStatus == models.StatusPending {
			return nil
		}

		notification := statusNotification(order, newStatus, shopDisplayName(tx, order))
		return createNotificationOnce(tx, notification)
	})
	if err != nil {
		return err
	}

	order.ClothStatus = newStatus
	return nil
}

// NotifyOrderPlaced emits the one-time order_placed notification.
// Called inside the order-creation transaction.
func NotifyOrderPlaced(tx *gorm.DB, order *models.Order) error {
	notification := &models.Notification{
		UserID:  order.UserID,
		Title:   fmt.Sprintf("Order #%d Placed Successfully", order.ID),
		Message: fmt.Sprintf("You placed an order with %s for ₹%.2f", shopDisplayName(tx, order), order.Amount),
		Type:    models.NotificationOrderPlaced,
		Icon:    "fas fa-shopping-cart",
		Color:   "#28a745",
	}
	return createNotificationOnce(tx, notification)
}

// statusNotification builds the notification row for a status value.
// Titles and messages mirror the customer-facing wording of the
// original service.
func statusNotification(order *models.Order, status, shopName string) *models.Notification {
	n := &models.Notification{
		UserID: order.UserID,
		Type:   models.NotificationStatusUpdate,
	}

	switch status {
	case models.StatusWashing:
		n.Title = fmt.Sprintf("Order #%d - Washing Started", order.ID)
		n.Message = fmt.Sprintf("Your laundry from %s is now being washed", shopName)
		n.Icon = "fas fa-tint"
		n.Color = "#17a2b8"
	case models.StatusDrying:
		n.Title = fmt.Sprintf("Order #%d - Drying Started", order.ID)
		n.Message = fmt.Sprintf("Your laundry from %s is now being dried", shopName)
		n.Icon = "fas fa-wind"
		n.Color = "#f39c12"
	case models.StatusIroning:
		n.Title = fmt.Sprintf("Order #%d - Ironing Started", order.ID)
		n.Message = fmt.Sprintf("Your laundry from %s is now being ironed", shopName)
		n.Icon = "fas fa-fire"
		n.Color = "#e74c3c"
	case models.StatusReady:
		n.Title = fmt.Sprintf("Order #%d Ready for Pickup", order.ID)
		n.Message = fmt.Sprintf("Your laundry from %s is ready! Please collect it.", shopName)
		n.Type = models.NotificationReadyPickup
		n.Icon = "fas fa-box-open"
		n.Color = "#f39c12"
	case models.StatusCompleted:
		n.Title = fmt.Sprintf("Order #%d Completed", order.ID)
		n.Message = fmt.Sprintf("Your laundry from %s has been successfully completed and delivered.", shopName)
		n.Type = models.NotificationCompleted
		n.Icon = "fas fa-check-circle"
		n.Color = "#28a745"
	}

	return n
}

// createNotificationOnce inserts the notification unless one with the
// same (user, title) already exists. A concurrent insert losing the
// race hits the unique index and is treated as already-created.
func createNotificationOnce(tx *gorm.DB, notification *models.Notification) error {
	var existing models.Notification
	err := tx.Where("user_id = ? AND title = ?", notification.UserID, notification.Title).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := tx.Create(notification).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return nil
		}
		return err
	}
	return nil
}

// shopDisplayName resolves the shop name for notification text.
// Orders keep a nullable shop reference, so a deleted shop degrades to
// a generic label instead of failing the transition.
func shopDisplayName(tx *gorm.DB, order *models.Order) string {
	if order.Shop != nil && order.Shop.Name != "" {
		return order.Shop.Name
	}
	if order.ShopID != nil {
		var shop models.Shop
		if err := tx.First(&shop, *order.ShopID).Error; err == nil {
			return shop.Name
		}
	}
	return "your laundry shop"
}
