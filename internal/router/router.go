// internal/router/router.go
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/soutech/shop-backend/internal/config"
	"github.com/soutech/shop-backend/internal/gateway"
	"github.com/soutech/shop-backend/internal/handlers"
	"github.com/soutech/shop-backend/internal/middleware"
	"github.com/soutech/shop-backend/internal/services"
	"github.com/soutech/shop-backend/internal/utils"
)

type options struct {
	gateway gateway.PaymentGateway
}

// Option overrides a dependency built by Initialize.
type Option func(*options)

// WithGateway replaces the payment gateway selected from configuration.
func WithGateway(g gateway.PaymentGateway) Option {
	return func(o *options) {
		o.gateway = g
	}
}

// NewGateway selects the payment gateway for the configured provider.
func NewGateway(cfg config.PaymentConfig) gateway.PaymentGateway {
	if cfg.Provider == "stripe" {
		return gateway.NewStripeGateway(cfg, nil)
	}
	return gateway.NewMercadoPagoClient(cfg)
}

func Initialize(db *gorm.DB, cfg *config.Config, opts ...Option) *gin.Engine {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.gateway == nil {
		o.gateway = NewGateway(cfg.Payment)
	}

	// Initialize services
	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	authService := services.NewAuthService(db, jwtManager)
	userService := services.NewUserService(db, authService)
	adminService := services.NewAdminService(db)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)
	checkoutService := services.NewCheckoutService(orderService, o.gateway, &cfg.Payment)
	reconciliationService := services.NewReconciliationService(orderService, o.gateway)
	storageService, err := services.NewStorageService(&cfg.Storage, productService)
	if err != nil {
		logrus.WithError(err).Warn("S3 storage unavailable, product images will be stored locally")
		storageService = services.NewStorageServiceWithClient(&cfg.Storage, productService, nil)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(adminService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(checkoutService, reconciliationService, cfg.Payment.BaseURL)
	healthHandler := handlers.NewHealthHandler(o.gateway, cfg.Payment.BaseURL)

	generalLimiter := middleware.NewRateLimiter(middleware.PerSecond(cfg.RateLimit.GeneralPerSecond), cfg.RateLimit.GeneralBurst)
	authLimiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.RateLimit.AuthPerMinute), cfg.RateLimit.AuthBurst)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())

	// Provider notifications bypass the general limiter.
	r.POST("/webhooks/mp", paymentHandler.Webhook)

	api := r.Group("")
	api.Use(generalLimiter.Middleware())

	api.GET("/health", healthHandler.Health)

	auth := api.Group("/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.AuthRequired(authService), authHandler.Me)
	}

	api.GET("/products", productHandler.ListProducts)

	// Checkout and the gateway return pages
	api.POST("/checkout", middleware.AuthRequired(authService), paymentHandler.CreateCheckout)
	checkout := api.Group("/checkout")
	{
		checkout.GET("/result", paymentHandler.CheckoutResult)
		checkout.GET("/success", paymentHandler.CheckoutSuccess)
		checkout.GET("/failure", paymentHandler.CheckoutFailure)
		checkout.GET("/pending", paymentHandler.CheckoutPending)
	}

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(authService))
	{
		orders.GET("/mine", orderHandler.MyOrders)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(authService))
	admin.Use(middleware.AdminRequired(authService))
	admin.Use(middleware.AuditLog(db))
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)
		admin.GET("/audit-logs", adminHandler.GetAuditLogs)

		products := admin.Group("/products")
		{
			products.GET("", productHandler.AdminListProducts)
			products.POST("", productHandler.CreateProduct)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
			products.POST("/:id/image", productHandler.UploadProductImage)
		}

		users := admin.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.PATCH("/:id", userHandler.UpdateUser)
		}

		adminOrders := admin.Group("/orders")
		{
			adminOrders.GET("", orderHandler.ListOrders)
			adminOrders.GET("/:id", orderHandler.GetOrder)
			adminOrders.DELETE("/:id", orderHandler.DeleteOrder)
		}
	}

	if !storageService.UsesS3() {
		api.Static("/uploads", cfg.Storage.LocalDir)
	}

	return r
}
