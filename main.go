package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brightshine/laundry-api/config"
	"github.com/brightshine/laundry-api/controllers"
	"github.com/brightshine/laundry-api/middleware"
	"github.com/brightshine/laundry-api/models"
	"github.com/brightshine/laundry-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Bright & Shine API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Shop{},
		&models.Branch{},
		&models.Service{},
		&models.Order{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize services
	services.InitMailService(cfg)
	services.InitCache(cfg)

	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitImageService(cfg); err != nil {
			log.Fatalf("Failed to initialize image service: %v", err)
		}
	} else {
		log.Println("AWS_S3_BUCKET not set, profile image uploads disabled")
	}

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the full route tree: public auth endpoints, then
// the three principal-scoped groups behind token validation
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// User authentication
		v1.POST("/signup", controllers.Signup)
		v1.POST("/login", controllers.Login)
		v1.POST("/logout", controllers.Logout)

		// Shop authentication
		v1.POST("/shop/register", controllers.RegisterShop)
		v1.POST("/shop/login", controllers.ShopLogin)
		v1.POST("/shop/logout", controllers.ShopLogout)
	}

	authed := v1.Group("", middleware.EnsureValidToken(cfg))

	// Customer routes
	user := authed.Group("", middleware.RequireUser())
	{
		user.GET("/dashboard", controllers.UserDashboard)
		user.GET("/shops", controllers.ListShops)

		user.POST("/orders", controllers.CreateOrder)
		user.GET("/orders", controllers.ListMyOrders)

		user.GET("/notifications", controllers.ListNotifications)
		user.POST("/notifications/:id/read", controllers.MarkNotificationRead)
		user.POST("/notifications/read-all", controllers.MarkAllNotificationsRead)

		user.GET("/profile", controllers.GetMyProfile)
		user.PUT("/profile", controllers.UpdateMyProfile)
		user.POST("/profile/image", controllers.UploadProfileImage)
	}

	// Shop operator routes
	shop := authed.Group("/shop", middleware.RequireShop())
	{
		shop.GET("/dashboard", controllers.ShopDashboard)

		shop.POST("/branches", controllers.CreateBranch)
		shop.GET("/branches", controllers.ListBranches)
		shop.PUT("/branches/:id", controllers.UpdateBranch)
		shop.DELETE("/branches/:id", controllers.DeleteBranch)

		shop.POST("/branches/:id/services", controllers.CreateService)
		shop.DELETE("/services/:id", controllers.DeleteService)

		shop.GET("/orders", controllers.ListShopOrders)
		shop.POST("/orders/:id/status", controllers.UpdateOrderStatus)
	}

	// Platform admin routes
	admin := authed.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/dashboard", controllers.AdminDashboard)

		admin.GET("/orders", controllers.AdminListOrders)
		admin.POST("/orders/:id/status", controllers.AdminUpdateOrderStatus)

		admin.GET("/shops", controllers.AdminListShops)
		admin.POST("/shops/:id/approve", controllers.ApproveShop)
		admin.POST("/shops/:id/reject", controllers.RejectShop)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bright & Shine API is running",
	})
}
