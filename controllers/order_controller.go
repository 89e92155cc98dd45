package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brightshine/laundry-api/config"
	"github.com/brightshine/laundry-api/middleware"
	"github.com/brightshine/laundry-api/models"
	"github.com/brightshine/laundry-api/services"
)

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	ShopID              uint       `json:"shop_id" binding:"required"`
	BranchID            *uint      `json:"branch_id"`
	Amount              float64    `json:"amount" binding:"gte=0"`
	DeliveryName        string     `json:"delivery_name"`
	DeliveryAddress     string     `json:"delivery_address"`
	DeliveryPhone       string     `json:"delivery_phone"`
	SpecialInstructions string     `json:"special_instructions"`
	PickupDate          *time.Time `json:"pickup_date"`
	DeliveryDate        *time.Time `json:"delivery_date"`
}

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder handles POST /api/v1/orders - places an order with a
// shop. Orders always start Pending and emit the order_placed
// notification in the same transaction.
func CreateOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	// Orders can only target approved shops; unapproved ones are not
	// visible to customers
	var shop models.Shop
	if err := db.Where("id = ? AND is_approved = ?", req.ShopID, true).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHOP_NOT_FOUND",
				"message": "Shop not found",
			},
		})
		return
	}

	if req.BranchID != nil {
		var branch models.Branch
		if err := db.Where("id = ? AND shop_id = ?", *req.BranchID, shop.ID).First(&branch).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "BRANCH_NOT_FOUND",
					"message": "Branch not found for this shop",
				},
			})
			return
		}
	}

	shopID := shop.ID
	order := models.Order{
		UserID:              userID,
		ShopID:              &shopID,
		BranchID:            req.BranchID,
		ClothStatus:         models.StatusPending,
		Amount:              req.Amount,
		DeliveryName:        req.DeliveryName,
		DeliveryAddress:     req.DeliveryAddress,
		DeliveryPhone:       req.DeliveryPhone,
		SpecialInstructions: req.SpecialInstructions,
		PickupDate:          req.PickupDate,
		DeliveryDate:        req.DeliveryDate,
	}

	// Order row and its order_placed notification commit together
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return services.NotifyOrderPlaced(tx, &order)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	invalidateAdminStats(c)

	if err := db.Preload("Shop").Preload("Branch").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListMyOrders handles GET /api/v1/orders - lists the authenticated
// user's orders newest first, with an optional status filter
func ListMyOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	query := db.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("cloth_status = ?", status)
	}

	var orders []models.Order
	if err := query.Preload("Shop").Preload("Branch").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListShopOrders handles GET /api/v1/shop/orders - lists orders placed
// with the authenticated shop
func ListShopOrders(c *gin.Context) {
	shopID, err := middleware.GetShopID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract shop information",
			},
		})
		return
	}

	db := config.GetDB()
	query := db.Where("shop_id = ?", shopID)
	if status := c.Query("status"); status != "" {
		query = query.Where("cloth_status = ?", status)
	}

	var orders []models.Order
	if err := query.Preload("User").Preload("Branch").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateOrderStatus handles POST /api/v1/shop/orders/:id/status - a
// shop operator advances the cloth status of one of its own orders.
// Responds with the flat {success, message} shape the status widgets
// consume.
func UpdateOrderStatus(c *gin.Context) {
	shopID, err := middleware.GetShopID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract shop information",
		})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Status is required",
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Order not found",
		})
		return
	}

	// Cross-tenant isolation: a shop may only touch its own orders
	if order.ShopID == nil || *order.ShopID != shopID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "You do not have permission to update this order",
		})
		return
	}

	if err := services.ApplyStatus(db, &order, req.Status); err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid status value",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update order status",
		})
		return
	}

	invalidateAdminStats(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Order #%d status updated to %s", order.ID, order.ClothStatus),
	})
}
