// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/handlers"
	"github.com/madeinfrance/mif-backend/internal/middleware"
	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	eventService := services.NewEventService(db)
	storageService, _ := services.NewStorageService(cfg)
	subscriptionService := services.NewSubscriptionService(db, cfg)

	authService := services.NewAuthService(db, cfg, eventService)
	brandService := services.NewBrandService(db, eventService)
	productService := services.NewProductService(db)
	taxonomyService := services.NewTaxonomyService(db)
	favoriteService := services.NewFavoriteService(db, eventService)
	userService := services.NewUserService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	brandHandler := handlers.NewBrandHandler(brandService, productService)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	userHandler := handlers.NewUserHandler(brandService)
	eventHandler := handlers.NewEventHandler(eventService)
	studioHandler := handlers.NewStudioHandler(brandService, productService, storageService, subscriptionService)
	adminHandler := handlers.NewAdminHandler(brandService, userService, eventService)
	webhookHandler := handlers.NewWebhookHandler(subscriptionService)

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
	r.Use(middleware.EventLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Stripe webhooks sit outside /v1: no auth, raw body
	r.POST("/webhooks/stripe", webhookHandler.HandleStripeWebhook)

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
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Public catalog
		brands := v1.Group("/brands")
		{
			brands.GET("", brandHandler.GetBrands)
			brands.GET("/featured", brandHandler.GetFeaturedBrands)
			brands.GET("/:slug", brandHandler.GetBrand)
			brands.GET("/:slug/products", brandHandler.GetBrandProducts)
		}

		v1.GET("/sectors", taxonomyHandler.GetSectors)
		v1.GET("/regions", taxonomyHandler.GetRegions)
		v1.GET("/labels", taxonomyHandler.GetLabels)

		// Favorites
		favorites := v1.Group("/users/:userId/favorites")
		favorites.Use(middleware.AuthRequired())
		{
			favorites.GET("", favoriteHandler.GetFavorites)
			favorites.POST("", favoriteHandler.AddFavorite)
			favorites.POST("/:brandId", favoriteHandler.AddFavorite)
			favorites.DELETE("/:brandId", favoriteHandler.RemoveFavorite)
		}

		// Brand ownership lookup for studio onboarding
		v1.GET("/user/brands", middleware.AuthRequired(), userHandler.GetUserBrands)

		// Event ingestion
		v1.POST("/events", middleware.OptionalAuth(), eventHandler.IngestEvent)

		// Studio routes for brand owners
		studio := v1.Group("/studio")
		studio.Use(middleware.AuthRequired(), middleware.StudioRequired())
		{
			studio.POST("/brands", studioHandler.CreateBrand)
			studio.POST("/brands/:slug/claim", studioHandler.ClaimBrand)
			studio.PUT("/brands/:slug", studioHandler.UpdateBrand)
			studio.GET("/brands/:slug/products", studioHandler.GetProducts)
			studio.POST("/brands/:slug/products", studioHandler.CreateProduct)
			studio.PUT("/brands/:slug/products/:productSlug", studioHandler.UpdateProduct)
			studio.DELETE("/brands/:slug/products/:productSlug", studioHandler.DeleteProduct)
			studio.POST("/brands/:slug/logo", middleware.UploadRateLimit(), studioHandler.UploadLogo)
			studio.POST("/brands/:slug/subscription", studioHandler.CreateSubscription)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/analytics", adminHandler.GetAnalytics)
			admin.GET("/brands", adminHandler.GetBrands)
			admin.PATCH("/brands/:slug/status", adminHandler.UpdateBrandStatus)
			admin.PATCH("/users/:id/role", adminHandler.UpdateUserRole)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
