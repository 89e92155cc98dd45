package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightshine/laundry-api/config"
	"github.com/brightshine/laundry-api/models"
	"github.com/brightshine/laundry-api/services"
	"github.com/brightshine/laundry-api/utils"
)

// RegisterShopRequest represents the request body for shop registration
type RegisterShopRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password1 string `json:"password1" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// ShopLoginRequest represents the request body for shop login
type ShopLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterShop handles POST /api/v1/shop/register - registers a shop
// pending admin approval
func RegisterShop(c *gin.Context) {
	var req RegisterShopRequest
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

	if req.Password1 != req.Password2 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Passwords do not match",
			},
		})
		return
	}

	if len(req.Password1) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Password must be at least 6 characters",
			},
		})
		return
	}

	db := config.GetDB()

	var count int64
	if err := db.Model(&models.Shop{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check shop name availability",
			},
		})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHOP_NAME_EXISTS",
				"message": "A shop with this name already exists",
			},
		})
		return
	}

	if err := db.Model(&models.Shop{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check shop email availability",
			},
		})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHOP_EMAIL_EXISTS",
				"message": "A shop with this email already exists",
			},
		})
		return
	}

	hash, err := services.HashPassword(req.Password1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to process password",
			},
		})
		return
	}

	shop := models.Shop{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Address:      req.Address,
		City:         req.City,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IsOpen:       true,
		IsApproved:   false,
	}

	if err := db.Create(&shop).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SHOP_EXISTS",
					"message": "A shop with this name or email already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to register shop",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Shop registered successfully. Awaiting admin approval.",
		"data":    shop,
	})
}

// ShopLogin handles POST /api/v1/shop/login - authenticates a shop.
// Unapproved shops are rejected even with correct credentials, with a
// distinct pending-approval error.
func ShopLogin(c *gin.Context) {
	var req ShopLoginRequest
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
	var shop models.Shop
	if err := db.Where("email = ?", req.Email).First(&shop).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid email or password",
			},
		})
		return
	}

	if !services.CheckPassword(shop.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid email or password",
			},
		})
		return
	}

	// Credential check passes first so the pending-approval error is
	// only disclosed to the shop owner
	if !shop.IsApproved {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PENDING_APPROVAL",
				"message": "Your shop registration is pending approval",
			},
		})
		return
	}

	token, err := services.GenerateShopToken(config.GetConfig(), &shop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOKEN_ERROR",
				"message": "Failed to issue token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token": token,
			"shop":  shop,
		},
	})
}

// ShopLogout handles POST /api/v1/shop/logout
func ShopLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}
