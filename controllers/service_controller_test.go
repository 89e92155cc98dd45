package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/brightshine/laundry-api/models"
)

func setupServiceRouter(shopID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(asShop(shopID, "test-shop"))
	router.POST("/api/v1/shop/branches/:id/services", CreateService)
	router.DELETE("/api/v1/shop/services/:id", DeleteService)
	return router
}

func TestCreateService(t *testing.T) {
	db := setupTestDB(t)
	shop := createTestShop(t, db, "myshop", true)
	branch := createTestBranch(t, db, shop.ID, "Main Branch")
	router := setupServiceRouter(shop.ID)

	price := 50.0
	w, response := performJSON(t, router, "POST", fmt.Sprintf("/api/v1/shop/branches/%d/services", branch.ID), map[string]interface{}{
		"name":  "Dry Clean",
		"price": price,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Dry Clean", data["name"])
	assert.Equal(t, price, data["price"])
}

func TestCreateServiceDuplicateNameSameBranch(t *testing.T) {
	db := setupTestDB(t)
	shop := createTestShop(t, db, "myshop", true)
	branch := createTestBranch(t, db, shop.ID, "Main Branch")
	otherBranch := createTestBranch(t, db, shop.ID, "Second Branch")
	router := setupServiceRouter(shop.ID)

	path := fmt.Sprintf("/api/v1/shop/branches/%d/services", branch.ID)
	w, _ := performJSON(t, router, "POST", path, map[string]interface{}{"name": "Dry Clean"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same name in the same branch always conflicts
	w, response := performJSON(t, router, "POST", path, map[string]interface{}{"name": "Dry Clean"})
	assert.Equal(t, http.StatusConflict, w.Code)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "SERVICE_EXISTS", errorData["code"])

	var count int64
	db.Model(&models.Service{}).Where("branch_id = ?", branch.ID).Count(&count)
	assert.Equal(t, int64(1), count, "Conflict must not create a second row")

	// Same name in a different branch always succeeds
	w, _ = performJSON(t, router, "POST", fmt.Sprintf("/api/v1/shop/branches/%d/services", otherBranch.ID), map[string]interface{}{"name": "Dry Clean"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateServiceForeignBranch(t *testing.T) {
	db := setupTestDB(t)
	shop := createTestShop(t, db, "myshop", true)
	other := createTestShop(t, db, "othershop", true)
	foreign := createTestBranch(t, db, other.ID, "Their Branch")
	router := setupServiceRouter(shop.ID)

	w, response := performJSON(t, router, "POST", fmt.Sprintf("/api/v1/shop/branches/%d/services", foreign.ID), map[string]interface{}{
		"name": "Dry Clean",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "BRANCH_NOT_FOUND", errorData["code"])
}

func TestDeleteService(t *testing.T) {
	db := setupTestDB(t)
	shop := createTestShop(t, db, "myshop", true)
	branch := createTestBranch(t, db, shop.ID, "Main Branch")
	service := models.Service{BranchID: branch.ID, Name: "Ironing"}
	assert.NoError(t, db.Create(&service).Error)
	router := setupServiceRouter(shop.ID)

	w, _ := performJSON(t, router, "DELETE", fmt.Sprintf("/api/v1/shop/services/%d", service.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Service{}).Where("id = ?", service.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteServiceCrossTenant(t *testing.T) {
	db := setupTestDB(t)
	shop := createTestShop(t, db, "myshop", true)
	other := createTestShop(t, db, "othershop", true)
	foreignBranch := createTestBranch(t, db, other.ID, "Their Branch")
	foreignService := models.Service{BranchID: foreignBranch.ID, Name: "Ironing"}
	assert.NoError(t, db.Create(&foreignService).Error)
	router := setupServiceRouter(shop.ID)

	w, response := performJSON(t, router, "DELETE", fmt.Sprintf("/api/v1/shop/services/%d", foreignService.ID), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "SERVICE_NOT_FOUND", errorData["code"])

	var count int64
	db.Model(&models.Service{}).Where("id = ?", foreignService.ID).Count(&count)
	assert.Equal(t, int64(1), count, "Foreign service must not be deleted")
}
