package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/api/handlers"
	"github.com/erendoru/panobu-api/internal/api/middleware"
	"github.com/erendoru/panobu-api/internal/auth"
	"github.com/erendoru/panobu-api/internal/config"
	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/payments"
	"github.com/erendoru/panobu-api/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, provider payments.Provider, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tm := auth.NewTokenManager(cfg.Auth)

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://panobu.com", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public routes
		v1.POST("/auth/register", handlers.HandleRegister(repos, tm, logger))
		v1.POST("/auth/login", handlers.HandleLogin(repos, tm, logger))
		v1.GET("/panels", handlers.HandleListPanels(repos, logger))
		v1.GET("/panels/:id", handlers.HandleGetPanel(repos, logger))

		// Cart routes (authenticated users or anonymous sessions)
		cartRoutes := v1.Group("/cart")
		cartRoutes.Use(middleware.OptionalAuthMiddleware(tm))
		{
			cartRoutes.GET("", handlers.HandleGetCart(repos, logger))
			cartRoutes.POST("/items", handlers.HandleAddCartItem(repos, logger))
			cartRoutes.DELETE("/items/:id", handlers.HandleRemoveCartItem(repos, logger))
			cartRoutes.DELETE("", handlers.HandleClearCart(repos, logger))
		}

		// Advertiser routes
		orderRoutes := v1.Group("/orders")
		orderRoutes.Use(middleware.AuthMiddleware(tm, logger))
		orderRoutes.Use(middleware.RequireRoles(domain.RoleAdvertiser, domain.RoleAdmin))
		{
			orderRoutes.POST("", handlers.HandleCreateOrder(repos, provider, logger))
			orderRoutes.GET("", handlers.HandleListOrders(repos, logger))
			orderRoutes.GET("/:id", handlers.HandleGetOrder(repos, provider, logger))
			orderRoutes.POST("/:id/checkout", handlers.HandleCheckout(repos, provider, logger))
			orderRoutes.POST("/:id/confirm-payment", handlers.HandleConfirmPayment(repos, provider, logger))
		}

		// Screen owner routes
		ownerRoutes := v1.Group("/owner")
		ownerRoutes.Use(middleware.AuthMiddleware(tm, logger))
		ownerRoutes.Use(middleware.RequireRoles(domain.RoleScreenOwner, domain.RoleAdmin))
		{
			ownerRoutes.GET("/panels", handlers.HandleListOwnerPanels(repos, logger))
			ownerRoutes.POST("/panels", handlers.HandleCreatePanel(repos, logger))
			ownerRoutes.PUT("/panels/:id", handlers.HandleUpdatePanel(repos, logger))
		}

		// Admin routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(tm, logger))
		adminRoutes.Use(middleware.RequireRoles(domain.RoleAdmin))
		{
			adminRoutes.GET("/pricing-rules", handlers.HandleListPricingRules(repos, logger))
			adminRoutes.POST("/pricing-rules", handlers.HandleCreatePricingRule(repos, logger))
			adminRoutes.PUT("/pricing-rules/:id", handlers.HandleUpdatePricingRule(repos, logger))
			adminRoutes.DELETE("/pricing-rules/:id", handlers.HandleDeletePricingRule(repos, logger))
			adminRoutes.GET("/orders", handlers.HandleAdminListOrders(repos, logger))
			adminRoutes.POST("/orders/:id/cancel", handlers.HandleCancelOrder(repos, provider, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
