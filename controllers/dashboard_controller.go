package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brightshine/laundry-api/config"
	"github.com/brightshine/laundry-api/middleware"
	"github.com/brightshine/laundry-api/models"
	"github.com/brightshine/laundry-api/services"
)

const (
	adminStatsCacheKey = "stats:admin_dashboard"
	adminStatsCacheTTL = 30 * time.Second
)

// invalidateAdminStats drops the cached admin aggregates after any
// mutation that changes them. Best-effort; the TTL bounds staleness.
func invalidateAdminStats(c *gin.Context) {
	if cache := services.GetCache(); cache != nil {
		if err := cache.Delete(c.Request.Context(), adminStatsCacheKey); err != nil {
			log.Printf("Failed to invalidate admin stats cache: %v", err)
		}
	}
}

// UserDashboard handles GET /api/v1/dashboard - per-user aggregates
func UserDashboard(c *gin.Context) {
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

	var pendingCount, completedCount int64
	db.Model(&models.Order{}).
		Where("user_id = ? AND cloth_status = ?", userID, models.StatusPending).
		Count(&pendingCount)
	db.Model(&models.Order{}).
		Where("user_id = ? AND cloth_status = ?", userID, models.StatusCompleted).
		Count(&completedCount)

	var totalSpent float64
	db.Model(&models.Order{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalSpent)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"pending_count":   pendingCount,
			"completed_count": completedCount,
			"total_spent":     totalSpent,
		},
	})
}

// ShopDashboard handles GET /api/v1/shop/dashboard - per-shop
// aggregates: order counts by status, today's orders, revenue
func ShopDashboard(c *gin.Context) {
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

	ordersByStatus := make(map[string]int64, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		var count int64
		db.Model(&models.Order{}).
			Where("shop_id = ? AND cloth_status = ?", shopID, status).
			Count(&count)
		ordersByStatus[status] = count
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var todayOrders int64
	db.Model(&models.Order{}).
		Where("shop_id = ? AND created_at >= ?", shopID, startOfDay).
		Count(&todayOrders)

	var revenue float64
	db.Model(&models.Order{}).
		Where("shop_id = ? AND cloth_status = ?", shopID, models.StatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"orders_by_status": ordersByStatus,
			"completed_orders": ordersByStatus[models.StatusCompleted],
			"today_orders":     todayOrders,
			"revenue":          revenue,
		},
	})
}

// adminStats is the cached payload of the admin dashboard
type adminStats struct {
	TotalUsers     int64            `json:"total_users"`
	TotalShops     int64            `json:"total_shops"`
	PendingShops   int64            `json:"pending_shops"`
	TotalOrders    int64            `json:"total_orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	TodayOrders    int64            `json:"today_orders"`
	TotalRevenue   float64          `json:"total_revenue"`
}

// AdminDashboard handles GET /api/v1/admin/dashboard - platform-wide
// aggregates, cached briefly since every widget on the admin panel
// polls it
func AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	if cache := services.GetCache(); cache != nil {
		if cached, ok, err := cache.Get(ctx, adminStatsCacheKey); err == nil && ok {
			var stats adminStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				c.JSON(http.StatusOK, gin.H{
					"success": true,
					"data":    stats,
				})
				return
			}
		}
	}

	db := config.GetDB()
	var stats adminStats

	db.Model(&models.User{}).Count(&stats.TotalUsers)
	db.Model(&models.Shop{}).Count(&stats.TotalShops)
	db.Model(&models.Shop{}).Where("is_approved = ?", false).Count(&stats.PendingShops)
	db.Model(&models.Order{}).Count(&stats.TotalOrders)

	stats.OrdersByStatus = make(map[string]int64, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		var count int64
		db.Model(&models.Order{}).Where("cloth_status = ?", status).Count(&count)
		stats.OrdersByStatus[status] = count
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	db.Model(&models.Order{}).Where("created_at >= ?", startOfDay).Count(&stats.TodayOrders)

	db.Model(&models.Order{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalRevenue)

	if cache := services.GetCache(); cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := cache.Set(ctx, adminStatsCacheKey, string(payload), adminStatsCacheTTL); err != nil {
				log.Printf("Failed to cache admin stats: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// ListShops handles GET /api/v1/shops - the customer-facing catalog of
// approved, open shops. The city filter is a plain string match.
func ListShops(c *gin.Context) {
	db := config.GetDB()
	query := db.Where("is_approved = ? AND is_open = ?", true, true)
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var shops []models.Shop
	if err := query.Preload("Branches.Services").
		Order("created_at DESC").
		Find(&shops).Error; err != nil {
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
