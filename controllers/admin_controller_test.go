package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/brightshine/laundry-api/models"
)

func setupAdminRouter(adminID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(asUser(adminID, "admin"))
	router.POST("/api/v1/admin/orders/:id/status", AdminUpdateOrderStatus)
	router.GET("/api/v1/admin/orders", AdminListOrders)
	router.GET("/api/v1/admin/shops", AdminListShops)
	router.POST("/api/v1/admin/shops/:id/approve", ApproveShop)
	router.POST("/api/v1/admin/shops/:id/reject", RejectShop)
	return router
}

func TestAdminUpdateOrderStatusAnyShop(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "boss", "boss@example.com", true)
	user := createTestUser(t, db, "alice", "alice@example.com", false)
	shop := createTestShop(t, db, "QuickClean", true)
	order := createTestOrder(t, db, user.ID, shop.ID, 150, models.StatusReady)
	router := setupAdminRouter(admin.ID)

	// Admins are not scoped to any shop
	w, response := performJSON(t, router, "POST", fmt.Sprintf("/api/v1/admin/orders/%d/status", order.ID), map[string]interface{}{
		"status": models.StatusCompleted,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, response["success"].(bool))

	var reloaded models.Order
	db.First(&reloaded, order.ID)
	assert.Equal(t, models.StatusCompleted, reloaded.ClothStatus)

	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND title = ?", user.ID, fmt.Sprintf("Order #%d Completed", order.ID)).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAdminUpdateOrderStatusInvalid(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "boss", "boss@example.com", true)
	user := createTestUser(t, db, "alice", "alice@example.com", false)
	shop := createTestShop(t, db, "QuickClean", true)
	order := createTestOrder(t, db, user.ID, shop.ID, 150, models.StatusPending)
	router := setupAdminRouter(admin.ID)

	w, response := performJSON(t, router, "POST", fmt.Sprintf("/api/v1/admin/orders/%d/status", order.ID), map[string]interface{}{
		"status": "Folded",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, response["success"].(bool))
	assert.Equal(t, "Invalid status value", response["message"])
}

func TestApproveShop(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "boss", "boss@example.com", true)
	shop := createTestShop(t, db, "waiting", false)
	router := setupAdminRouter(admin.ID)

	w, response := performJSON(t, router, "POST", fmt.Sprintf("/api/v1/admin/shops/%d/approve", shop.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, response["success"].(bool))

	var reloaded models.Shop
	db.First(&reloaded, shop.ID)
	assert.True(t, reloaded.IsApproved)
}

func TestApproveShopNotFound(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "boss", "boss@example.com", true)
	router := setupAdminRouter(admin.ID)

	w, response := performJSON(t, router, "POST", "/api/v1/admin/shops/9999/approve", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "SHOP_NOT_FOUND", errorData["code"])
}

func TestRejectShopRemovesShopAndKeepsOrders(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "boss", "boss@example.com", true)
	user := createTestUser(t, db, "alice", "alice@example.com", false)
	shop := createTestShop(t, db, "badshop", false)
	branch := createTestBranch(t, db, shop.ID, "Main Branch")
	service := models.Service{BranchID: branch.ID, Name: "Dry Clean"}
	assert.NoError(t, db.Create(&service).Error)
	order := createTestOrder(t, db, user.ID, shop.ID, 100, models.StatusPending)
	db.Model(order).Update("branch_id", branch.ID)
	router := setupAdminRouter(admin.ID)

	w, response := performJSON(t, router, "POST", fmt.Sprintf("/api/v1/admin/shops/%d/reject", shop.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, response["success"].(bool))

	// Shop, branches and services are gone
	var shopCount, branchCount, serviceCount int64
	db.Model(&models.Shop{}).Where("id = ?", shop.ID).Count(&shopCount)
	db.Model(&models.Branch{}).Where("shop_id = ?", shop.ID).Count(&branchCount)
	db.Model(&models.Service{}).Where("branch_id = ?", branch.ID).Count(&serviceCount)
	assert.Equal(t, int64(0), shopCount)
	assert.Equal(t, int64(0), branchCount)
	assert.Equal(t, int64(0), serviceCount)

	// The order row survives with both references nulled
	var reloaded models.Order
	assert.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Nil(t, reloaded.ShopID)
	assert.Nil(t, reloaded.BranchID)
}

func TestAdminListShopsPendingFilter(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "boss", "boss@example.com", true)
	createTestShop(t, db, "approved-one", true)
	createTestShop(t, db, "pending-one", false)
	createTestShop(t, db, "pending-two", false)
	router := setupAdminRouter(admin.ID)

	w, response := performJSON(t, router, "GET", "/api/v1/admin/shops", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 3)

	w, response = performJSON(t, router, "GET", "/api/v1/admin/shops?pending=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 2)
}

func TestAdminListOrders(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "boss", "boss@example.com", true)
	alice := createTestUser(t, db, "alice", "alice@example.com", false)
	bob := createTestUser(t, db, "bob", "bob@example.com", false)
	shop := createTestShop(t, db, "QuickClean", true)
	createTestOrder(t, db, alice.ID, shop.ID, 100, models.StatusPending)
	createTestOrder(t, db, alice.ID, shop.ID, 200, models.StatusCompleted)
	target := createTestOrder(t, db, bob.ID, shop.ID, 300, models.StatusPending)
	router := setupAdminRouter(admin.ID)

	tests := []struct {
		name          string
		query         string
		expectedLen   int
		expectedTotal float64
	}{
		{"All orders with amount sum", "", 3, 600},
		{"Filter by status", "?status=Completed", 1, 200},
		{"Search by username", "?q=bob", 1, 300},
		{"Search by email", "?q=alice@example.com", 2, 300},
		{"Search by order id", fmt.Sprintf("?q=%d", target.ID), 1, 300},
		{"Today's orders", "?today=true", 3, 600},
		{"No matches", "?q=nobody", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := performJSON(t, router, "GET", "/api/v1/admin/orders"+tt.query, nil)

			assert.Equal(t, http.StatusOK, w.Code)
			data := response["data"].(map[string]interface{})
			assert.Len(t, data["orders"].([]interface{}), tt.expectedLen)
			assert.Equal(t, tt.expectedTotal, data["total_amount"])
		})
	}
}
