package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brightshine/laundry-api/config"
	"github.com/brightshine/laundry-api/middleware"
	"github.com/brightshine/laundry-api/models"
	"github.com/brightshine/laundry-api/utils"
)

// BranchRequest represents the request body for creating or editing a branch
type BranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CreateBranch handles POST /api/v1/shop/branches - adds a branch to
// the authenticated shop
func CreateBranch(c *gin.Context) {
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

	var req BranchRequest
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

	branch := models.Branch{
		ShopID:  shopID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}

	db := config.GetDB()
	if err := db.Create(&branch).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "BRANCH_EXISTS",
					"message": "A branch with this name already exists for your shop",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create branch",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    branch,
	})
}

// ListBranches handles GET /api/v1/shop/branches - lists the
// authenticated shop's branches with their services
func ListBranches(c *gin.Context) {
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
	var branches []models.Branch
	if err := db.Where("shop_id = ?", shopID).
		Preload("Services").
		Order("created_at DESC").
		Find(&branches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch branches",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    branches,
	})
}

// UpdateBranch handles PUT /api/v1/shop/branches/:id - edits a branch.
// The branch is re-fetched scoped to the authenticated shop, so a
// guessed id belonging to another shop reads as not found.
func UpdateBranch(c *gin.Context) {
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

	var req BranchRequest
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

	updates := map[string]interface{}{
		"name":    req.Name,
		"address": req.Address,
		"phone":   req.Phone,
	}
	if err := db.Model(&branch).Updates(updates).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "BRANCH_EXISTS",
					"message": "A branch with this name already exists for your shop",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update branch",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    branch,
	})
}

// DeleteBranch handles DELETE /api/v1/shop/branches/:id - removes a
// branch, cascading its services and nulling order references
func DeleteBranch(c *gin.Context) {
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

	// Services cascade with the branch; orders keep the row and lose
	// only the branch reference
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("branch_id = ?", branch.ID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).
			Where("branch_id = ?", branch.ID).
			Update("branch_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&branch).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete branch",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Branch deleted",
	})
}
