// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/agrohaat/agrohaat-backend/internal/config"
	"github.com/agrohaat/agrohaat-backend/internal/handlers"
	"github.com/agrohaat/agrohaat-backend/internal/middleware"
	"github.com/agrohaat/agrohaat-backend/internal/services"
	"github.com/agrohaat/agrohaat-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}

	authService := services.NewAuthService(db, cfg)
	listingService := services.NewListingService(db, cfg, notificationService)
	cropService := services.NewCropService(db, cfg)
	aiService := services.NewAIService(db, cfg)
	weatherService := services.NewWeatherService(cfg)
	userService := services.NewUserService(db, cfg, storageService)
	adminService := services.NewAdminService(db, cfg, listingService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	listingHandler := handlers.NewListingHandler(listingService)
	cropHandler := handlers.NewCropHandler(cropService, storageService)
	aiHandler := handlers.NewAIHandler(aiService, storageService)
	weatherHandler := handlers.NewWeatherHandler(weatherService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Marketplace listings
		listings := v1.Group("/listings")
		{
			listings.GET("", middleware.OptionalAuth(), listingHandler.ListListings)
			listings.GET("/:id", listingHandler.GetListing)
			listings.GET("/:id/bids", middleware.OptionalAuth(), listingHandler.ListBids)

			// Farmer-only lifecycle operations
			farmer := listings.Group("")
			farmer.Use(middleware.AuthRequired(), middleware.FarmerRequired())
			{
				farmer.POST("", listingHandler.CreateListing)
				farmer.PUT("/:id", listingHandler.UpdateListing)
				farmer.DELETE("/:id", listingHandler.DeleteListing)
				farmer.POST("/:id/sell", listingHandler.Sell)
			}

			// Dealer-only bidding
			dealer := listings.Group("")
			dealer.Use(middleware.AuthRequired(), middleware.DealerRequired())
			{
				dealer.POST("/:id/bid", listingHandler.PlaceBid)
			}
		}

		// Farmer field records
		crops := v1.Group("/crops")
		crops.Use(middleware.AuthRequired(), middleware.FarmerRequired())
		{
			crops.GET("", cropHandler.ListCrops)
			crops.POST("", cropHandler.CreateCrop)
			crops.GET("/:id", cropHandler.GetCrop)
			crops.PUT("/:id", cropHandler.UpdateCrop)
			crops.DELETE("/:id", cropHandler.DeleteCrop)
			crops.POST("/:id/image", middleware.UploadRateLimit(), cropHandler.UploadCropImage)
		}

		// AI assistance
		ai := v1.Group("/ai")
		ai.Use(middleware.AuthRequired(), middleware.FarmerRequired(), middleware.AIRateLimit())
		{
			ai.POST("/disease-detection", aiHandler.DiseaseDetection)
			ai.POST("/crop-planning", aiHandler.CropPlanning)
			ai.GET("/disease-reports", aiHandler.ListDiseaseReports)
		}

		// Weather
		v1.GET("/weather", weatherHandler.GetForecast)

		// Notifications
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}

		// Users
		users := v1.Group("/users")
		{
			users.GET("/:id/public", userHandler.GetPublicProfile)

			protected := users.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.PUT("/profile", userHandler.UpdateProfile)
				protected.POST("/upload-avatar", middleware.UploadRateLimit(), userHandler.UploadAvatar)
			}
		}

		// Admin
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard/stats", adminHandler.Dashboard)
			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
			admin.POST("/listings/expire", adminHandler.ExpireListings)
			admin.GET("/audit-logs", adminHandler.ListAuditLogs)
		}
	}

	return r
}
