package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pesafolio/internal/config"
	"pesafolio/internal/database"
	"pesafolio/internal/handlers"
	"pesafolio/internal/logger"
	"pesafolio/internal/middleware"
	"pesafolio/internal/scheduler"
	"pesafolio/internal/services"
	"pesafolio/internal/validator"

	_ "pesafolio/internal/docs" // Import swagger docs
)

// @title           Pesafolio API
// @version         1.0
// @description     Pesafolio helps Kenyan retail investors track NSE shares, money market funds, SACCOs, chamas, and physical assets in one portfolio, with live market quotes and AI-generated commentary.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom validation tags on Gin's binding engine
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx := context.Background()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	platformService := services.NewPlatformService(db)
	priceService := services.NewPriceService(appConfig.AlphaVantageAPIKey, appConfig.QuoteCacheTTL, nil)
	holdingService := services.NewHoldingService(db, priceService)
	transactionService := services.NewTransactionService(db, holdingService)
	insightService := services.NewInsightService(ctx, appConfig.GeminiAPIKey, appConfig.GeminiModel)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	platformHandler := handlers.NewPlatformHandler(platformService, auditService)
	holdingHandler := handlers.NewHoldingHandler(holdingService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	marketHandler := handlers.NewMarketHandler(priceService)
	insightHandler := handlers.NewInsightHandler(insightService)

	// Background price refresh
	if appConfig.PriceRefreshCron != "" {
		sched := scheduler.New(ctx, holdingService)
		if err := sched.Register(appConfig.PriceRefreshCron); err != nil {
			return fmt.Errorf("failed to register price refresh job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/auth/me", authHandler.Me)

	// Platform routes
	platforms := protected.Group("/platforms")
	platforms.POST("", platformHandler.ConnectPlatform)
	platforms.GET("", platformHandler.GetPlatforms)
	platforms.GET("/:id", platformHandler.GetPlatform)

	// Holding and portfolio routes
	protected.GET("/holdings", holdingHandler.GetHoldings)
	protected.GET("/portfolio/summary", holdingHandler.GetPortfolioSummary)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.POST("/physical", transactionHandler.CreatePhysicalTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)

	// Market data and insights
	protected.POST("/market/prices", marketHandler.FetchPrices)
	protected.POST("/insights", insightHandler.GenerateInsights)

	log.Infof("Starting Pesafolio backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
