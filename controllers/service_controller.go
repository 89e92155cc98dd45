package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightshine/laundry-api/config"
	"github.com/brightshine/laundry-api/middleware"
	"github.com/brightshine/laundry-api/models"
	"github.com/brightshine/laundry-api/utils"
)

// ServiceRequest represents the request body for creating a service
type ServiceRequest struct {
	Name  string   `json:"name" binding:"required"`
	Price *float64 `json:"price" binding:"omitempty,gte=0"`
}

// CreateService handles POST /api/v1/shop/branches/:id/services - adds
// a service to one of the authenticated shop's branches
func CreateService(c *gin.Context) {
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

	// Scope the branch to the authenticated shop; a foreign branch id
	// reads as not found
	db := config.GetDB()
	var branch models.Branch
	if err := db.Where("id = ? AND shop_id = ?", c.Param("id"), shopID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BRANCH_NOT_FOUND",
				"message": "Branch not found",
			},
		})
		return
	}

	var req ServiceRequest
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

	service := models.Service{
		BranchID: branch.ID,
		Name:     req.Name,
		Price:    req.Price,
	}

	if err := db.Create(&service).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SERVICE_EXISTS",
					"message": "A service with this name already exists in this branch",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create service",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    service,
	})
}

// DeleteService handles DELETE /api/v1/shop/services/:id - removes a
// service, scoped through its owning branch
func DeleteService(c *gin.Context) {
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
	var service models.Service
	if err := db.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	// Ownership check runs through the owning branch
	var branch models.Branch
	if err := db.Where("id = ? AND shop_id = ?", service.BranchID, shopID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	if err := db.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete service",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service deleted",
	})
}
