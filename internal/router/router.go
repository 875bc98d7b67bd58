// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/config"
	"github.com/dzboutik/dzboutik-backend/internal/handlers"
	"github.com/dzboutik/dzboutik-backend/internal/middleware"
	"github.com/dzboutik/dzboutik-backend/internal/models"
	"github.com/dzboutik/dzboutik-backend/internal/services"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	inventoryService := services.NewInventoryService(db)
	pricingService := services.NewPricingService(db)
	promoService := services.NewPromoService(db)
	orderService := services.NewOrderService(db, inventoryService, pricingService, promoService)

	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db, storageService)
	categoryService := services.NewCategoryService(db, storageService)
	packService := services.NewPackService(db, storageService)
	wilayaService := services.NewWilayaService(db)
	contactService := services.NewContactService(db)
	adminService := services.NewAdminService(db, pricingService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	packHandler := handlers.NewPackHandler(packService)
	orderHandler := handlers.NewOrderHandler(orderService)
	promoHandler := handlers.NewPromoHandler(promoService)
	wilayaHandler := handlers.NewWilayaHandler(wilayaService)
	contactHandler := handlers.NewContactHandler(contactService)
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

	// Locally stored uploads
	r.Static("/uploads", cfg.Uploads.LocalDir)

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
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
			auth.PUT("/password", middleware.AuthRequired(), authHandler.ChangePassword)
		}

		// Public storefront routes. Auth is optional so a staff request still
		// carries its identity into the audit log.
		shop := v1.Group("")
		shop.Use(middleware.OptionalAuth())
		{
			shop.GET("/products", productHandler.GetProducts)
			shop.GET("/products/:id", productHandler.GetProduct)
			shop.GET("/categories", categoryHandler.GetCategories)
			shop.GET("/categories/:id", categoryHandler.GetCategory)
			shop.GET("/packs", packHandler.GetPacks)
			shop.GET("/packs/:id", packHandler.GetPack)
			shop.GET("/wilayas", wilayaHandler.GetWilayas)
			shop.POST("/promo/check", promoHandler.CheckCode)
			shop.POST("/contact", contactHandler.CreateMessage)

			// Checkout
			shop.POST("/orders", middleware.CheckoutRateLimit(), orderHandler.CreateOrder)
		}

		// Back-office routes (any authenticated staff role)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired())
		admin.Use(middleware.RoleRequired(models.UserRoleSuper, models.UserRoleSubSuper, models.UserRoleEditor))
		{
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)

			admin.GET("/orders", orderHandler.GetOrders)
			admin.GET("/orders/:id", orderHandler.GetOrder)
			admin.PUT("/orders/:id", orderHandler.UpdateOrder)
			admin.POST("/orders/:id/cancel", orderHandler.CancelOrder)

			admin.POST("/products", productHandler.CreateProduct)
			admin.PUT("/products/:id", productHandler.UpdateProduct)
			admin.DELETE("/products/:id", productHandler.DeleteProduct)
			admin.POST("/products/:id/variants", productHandler.AddVariant)
			admin.PUT("/products/:id/variants/:variantId", productHandler.UpdateVariant)
			admin.DELETE("/products/:id/variants/:variantId", productHandler.DeleteVariant)

			admin.POST("/categories", categoryHandler.CreateCategory)
			admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
			admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

			admin.POST("/packs", packHandler.CreatePack)
			admin.PUT("/packs/:id", packHandler.UpdatePack)
			admin.DELETE("/packs/:id", packHandler.DeletePack)

			admin.GET("/promo-codes", promoHandler.GetPromoCodes)
			admin.POST("/promo-codes", promoHandler.CreatePromoCode)
			admin.PUT("/promo-codes/:id", promoHandler.UpdatePromoCode)
			admin.DELETE("/promo-codes/:id", promoHandler.DeletePromoCode)

			admin.GET("/wilayas", wilayaHandler.GetAllWilayas)
			admin.POST("/wilayas", wilayaHandler.CreateWilaya)
			admin.PUT("/wilayas/:id", wilayaHandler.UpdateWilaya)
			admin.DELETE("/wilayas/:id", wilayaHandler.DeleteWilaya)

			admin.GET("/contact-messages", contactHandler.GetMessages)
			admin.PUT("/contact-messages/:id/handled", contactHandler.MarkHandled)
			admin.DELETE("/contact-messages/:id", contactHandler.DeleteMessage)

			admin.POST("/uploads/:category", middleware.UploadRateLimit(), productHandler.UploadImage)
		}

		// Destructive and account-management routes stay with the super roles.
		super := v1.Group("/admin")
		super.Use(middleware.AuthRequired())
		super.Use(middleware.RoleRequired(models.UserRoleSuper, models.UserRoleSubSuper))
		{
			super.DELETE("/orders/:id", orderHandler.DeleteOrder)

			super.GET("/users", adminHandler.GetUsers)
			super.POST("/users", adminHandler.CreateUser)
			super.PUT("/users/:id", adminHandler.UpdateUser)
			super.DELETE("/users/:id", adminHandler.DeleteUser)
		}
	}

	return r
}
