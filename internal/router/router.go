// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/config"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/handlers"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/middleware"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/payment"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/services"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

// Initialize wires services, handlers and routes. The order service is
// returned alongside the engine so the server loop can run the stuck-order
// sweep against the same instance.
func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, *services.OrderService) {
	// Initialize services
	notificationService := services.NewNotificationService(db)
	storageService, _ := services.NewStorageService(cfg)

	var gateway payment.Gateway
	if cfg.Payment.Provider == "stripe" {
		gateway = payment.NewStripeGateway(cfg.Payment.StripeSecretKey, cfg.Payment.Currency)
	} else {
		gateway = payment.NewSimulatedGateway(cfg.Payment.SuccessRate)
	}

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db, storageService)
	productService := services.NewProductService(db)
	cartService := services.NewCartService(db, notificationService)
	orderService := services.NewOrderService(db, gateway, notificationService, cfg.Receipt.SigningSecret)
	reviewService := services.NewReviewService(db)
	chatService := services.NewChatService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	productHandler := handlers.NewProductHandler(productService, storageService, authService)
	cartHandler := handlers.NewCartHandler(cartService, authService)
	orderHandler := handlers.NewOrderHandler(orderService, authService)
	reviewHandler := handlers.NewReviewHandler(reviewService, authService)
	chatHandler := handlers.NewChatHandler(chatService, authService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, authService)
	adminHandler := handlers.NewAdminHandler(adminService, productService, reviewService, authService)

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

		// User routes
		users := v1.Group("/users")
		{
			users.GET("/:id", userHandler.GetPublicProfile)

			protected := users.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.PUT("/profile", userHandler.UpdateProfile)
				protected.POST("/avatar", middleware.UploadRateLimit(), userHandler.UploadAvatar)
			}
		}

		// Current user's full profile
		v1.GET("/profile", middleware.AuthRequired(), userHandler.GetProfile)

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/popular", productHandler.GetPopularProducts)
			products.GET("/new", productHandler.GetNewProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
			products.GET("/:id/reviews", reviewHandler.GetProductReviews)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/image", middleware.UploadRateLimit(), productHandler.UploadProductImage)
				protected.POST("/:id/reviews", reviewHandler.CreateReview)
			}
		}

		// Seller catalog
		v1.GET("/sellers/:id/products", productHandler.GetSellerProducts)

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PATCH("/items/:product_id", cartHandler.AdjustItem)
			cart.DELETE("/items/:product_id", cartHandler.RemoveItem)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.GetOrders)
			orders.POST("/checkout", middleware.PaymentRateLimit(), orderHandler.Checkout)
			orders.GET("/:transaction_id", orderHandler.GetOrder)
			orders.POST("/:transaction_id/pay", middleware.PaymentRateLimit(), orderHandler.SubmitPayment)
			orders.GET("/:transaction_id/receipt", orderHandler.DownloadReceipt)
			orders.GET("/:transaction_id/verify", orderHandler.VerifyReceipt)
		}

		// Chat routes
		chats := v1.Group("/chats")
		chats.Use(middleware.AuthRequired())
		{
			chats.POST("", chatHandler.StartChat)
			chats.GET("", chatHandler.ListRooms)
			chats.GET("/:id/messages", chatHandler.ListMessages)
			chats.POST("/:id/messages", chatHandler.SendMessage)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
		}

		// Reports
		v1.POST("/reports", middleware.AuthRequired(), userHandler.CreateReport)

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/users", adminHandler.ListUsers)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.POST("/users/:id/toggle-admin", middleware.SuperuserRequired(), adminHandler.ToggleAdminRole)
			admin.GET("/products", adminHandler.ListProducts)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.GET("/reviews", adminHandler.ListReviews)
			admin.DELETE("/reviews/:id", adminHandler.DeleteReview)
			admin.GET("/reports", adminHandler.ListReports)
			admin.POST("/reports/:id/resolve", adminHandler.ResolveReport)
		}
	}

	return r, orderService
}
