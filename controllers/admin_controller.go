package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brightshine/laundry-api/config"
	"github.com/brightshine/laundry-api/models"
	"github.com/brightshine/laundry-api/services"
)

// AdminUpdateOrderStatus handles POST /api/v1/admin/orders/:id/status -
// platform admins may set the status of any order
func AdminUpdateOrderStatus(c *gin.Context) {
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

// ApproveShop handles POST /api/v1/admin/shops/:id/approve - unlocks a
// pending shop registration for login
func ApproveShop(c *gin.Context) {
	db := config.GetDB()
	var shop models.Shop
	if err := db.First(&shop, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHOP_NOT_FOUND",
				"message": "Shop not found",
			},
		})
		return
	}

	if err := db.Model(&shop).Update("is_approved", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to approve shop",
			},
		})
		return
	}

	invalidateAdminStats(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Shop %q approved", shop.Name),
	})
}

// RejectShop handles POST /api/v1/admin/shops/:id/reject - permanently
// removes a shop registration. Any orders referencing the shop keep
// their rows with the shop reference nulled out.
func RejectShop(c *gin.Context) {
	db := config.GetDB()
	var shop models.Shop
	if err := db.First(&shop, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHOP_NOT_FOUND",
				"message": "Shop not found",
			},
		})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Where("shop_id = ?", shop.ID).
			Updates(map[string]interface{}{"shop_id": nil, "branch_id": nil}).Error; err != nil {
			return err
		}

		var branchIDs []uint
		if err := tx.Model(&models.Branch{}).
			Where("shop_id = ?", shop.ID).
			Pluck("id", &branchIDs).Error; err != nil {
			return err
		}
		if len(branchIDs) > 0 {
			if err := tx.Where("branch_id IN ?", branchIDs).Delete(&models.Service{}).Error; err != nil {
				return err
			}
			if err := tx.Where("shop_id = ?", shop.ID).Delete(&models.Branch{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&shop).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to reject shop",
			},
		})
		return
	}

	invalidateAdminStats(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Shop %q rejected and removed", shop.Name),
	})
}

// AdminListShops handles GET /api/v1/admin/shops - lists shops,
// optionally only registrations awaiting approval
func AdminListShops(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Shop{})
	if c.Query("pending") == "true" {
		query = query.Where("is_approved = ?", false)
	}

	var shops []models.Shop
	if err := query.Order("created_at DESC").Find(&shops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch shops",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    shops,
	})
}

// AdminListOrders handles GET /api/v1/admin/orders - global order
// search. Filters: status, q (order id, username or email), today=true.
// Returns matching orders newest first plus the amount sum over the
// filtered set.
func AdminListOrders(c *gin.Context) {
	db := config.GetDB()

	buildQuery := func() *gorm.DB {
		query := db.Model(&models.Order{}).
			Joins("JOIN users ON users.id = orders.user_id")

		if status := c.Query("status"); status != "" {
			query = query.Where("orders.cloth_status = ?", status)
		}
		if q := c.Query("q"); q != "" {
			pattern := "%" + q + "%"
			query = query.Where(
				"CAST(orders.id AS TEXT) = ? OR users.username LIKE ? OR users.email LIKE ?",
				q, pattern, pattern,
			)
		}
		if c.Query("today") == "true" {
			now := time.Now()
			startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			query = query.Where("orders.created_at >= ?", startOfDay)
		}
		return query
	}

	var orders []models.Order
	if err := buildQuery().
		Preload("User").Preload("Shop").
		Order("orders.created_at DESC").
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

	var totalAmount float64
	if err := buildQuery().
		Select("COALESCE(SUM(orders.amount), 0)").
		Scan(&totalAmount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to compute amount sum",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"orders":       orders,
			"total_amount": totalAmount,
		},
	})
}
