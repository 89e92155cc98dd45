package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brightshine/laundry-api/config"
	"github.com/brightshine/laundry-api/middleware"
	"github.com/brightshine/laundry-api/models"
	"github.com/brightshine/laundry-api/services"
)

// setupTestDB creates an in-memory database with all models migrated
// and installs it as the global instance
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Shop{},
		&models.Branch{},
		&models.Service{},
		&models.Order{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(&config.Config{
		JWTSecret:   "test-secret",
		JWTIssuer:   "https://test.brightshine.app/",
		JWTAudience: "brightshine-test",
	})
	services.SetCache(services.NewMemoryCache())
	services.SetMailService(services.NewMockMailService())
	services.SetImageService(nil)

	return db
}

// asUser installs a mock user principal on the request context,
// standing in for EnsureValidToken + RequireUser
func asUser(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := fmt.Sprintf("%d", userID)
		c.Set("principal_subject", subject)
		c.Set("validated_claims", &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: subject},
			CustomClaims:     &middleware.CustomClaims{PrincipalType: "user", Role: role},
		})
		c.Next()
	}
}

// asShop installs a mock shop principal on the request context
func asShop(shopID uint, shopName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := fmt.Sprintf("%d", shopID)
		c.Set("principal_subject", subject)
		c.Set("validated_claims", &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: subject},
			CustomClaims: &middleware.CustomClaims{
				PrincipalType: "shop",
				ShopID:        shopID,
				ShopName:      shopName,
			},
		})
		c.Next()
	}
}

// performJSON runs a JSON request against the router and decodes the
// response envelope
func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Response is not valid JSON: %v (%s)", err, w.Body.String())
		}
	}

	return w, response
}

// createTestUser inserts a user with its profile, as signup would
func createTestUser(t *testing.T, db *gorm.DB, username, email string, isStaff bool) *models.User {
	t.Helper()

	hash, err := services.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsStaff:      isStaff,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	profile := models.Profile{UserID: user.ID, FullName: username, EmailNotifications: true}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	return &user
}

// createTestShop inserts a shop, approved unless stated otherwise
func createTestShop(t *testing.T, db *gorm.DB, name string, approved bool) *models.Shop {
	t.Helper()

	hash, err := services.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	shop := models.Shop{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: hash,
		IsOpen:       true,
		IsApproved:   approved,
	}
	if err := db.Create(&shop).Error; err != nil {
		t.Fatalf("Failed to create test shop: %v", err)
	}

	return &shop
}

// createTestOrder inserts an order for the given user and shop
func createTestOrder(t *testing.T, db *gorm.DB, userID, shopID uint, amount float64, status string) *models.Order {
	t.Helper()

	order := models.Order{
		UserID:      userID,
		ShopID:      &shopID,
		ClothStatus: status,
		Amount:      amount,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}

	return &order
}
