package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"daechul/internal/config"
	"daechul/internal/database"
	"daechul/internal/handlers"
	"daechul/internal/logger"
	"daechul/internal/middleware"
	"daechul/internal/oracle"
	"daechul/internal/refresher"
	"daechul/internal/services"
	"daechul/internal/validator"

	_ "daechul/internal/docs" // Import swagger docs
)

// @title           Daechul API
// @version         1.0
// @description     Daechul is a stock-collateralized lending demo: pledge brokerage accounts and crypto as collateral, borrow KRW1 stablecoin against them, and track portfolio health.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run schema migration: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	oracleClient := oracle.NewClientWithBaseURL(&http.Client{}, appConfig.CoinGeckoBaseURL, appConfig.PriceFetchTimeout)
	userService := services.NewUserService(db)
	ledgerService := services.NewLedgerService(db)
	assetService := services.NewAssetService(db, oracleClient, ledgerService)
	collateralService := services.NewCollateralService(db, assetService, ledgerService)
	portfolioService := services.NewPortfolioService(db)
	loanService := services.NewLoanService(db, assetService, portfolioService, ledgerService, appConfig.LoanTermDays)

	// Seed the demo user and demo assets
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := userService.SeedDemoUser(appConfig.DemoEmail, appConfig.DemoPassword); err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}
	if err := assetService.InitializeAssets(ctx); err != nil {
		return fmt.Errorf("failed to initialize assets: %w", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	assetHandler := handlers.NewAssetHandler(assetService)
	collateralHandler := handlers.NewCollateralHandler(collateralService)
	loanHandler := handlers.NewLoanHandler(loanService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

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
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/profile", authHandler.Profile)

	tokens := protected.Group("/tokens")
	tokens.GET("", assetHandler.ListTokens)
	tokens.POST("/swap", assetHandler.Swap)
	tokens.GET("/:symbol", assetHandler.GetToken)

	stockAccounts := protected.Group("/stock-accounts")
	stockAccounts.GET("", assetHandler.ListStockAccounts)
	stockAccounts.GET("/:slug", assetHandler.GetStockAccount)

	protected.POST("/prices/refresh", assetHandler.RefreshPrices)

	collateral := protected.Group("/collateral")
	collateral.GET("", collateralHandler.ListCollateral)
	collateral.POST("", collateralHandler.AddCollateral)
	collateral.DELETE("/:refId", collateralHandler.RemoveCollateral)

	loans := protected.Group("/loans")
	loans.POST("", loanHandler.CreateLoan)
	loans.GET("", loanHandler.ListLoans)
	loans.GET("/:id", loanHandler.GetLoan)
	loans.POST("/:id/repay", loanHandler.RepayLoan)

	protected.GET("/portfolio/summary", portfolioHandler.Summary)
	protected.GET("/ledger", ledgerHandler.ListEntries)

	// Background price refresher
	priceRefresher := refresher.New(assetService, appConfig.PriceRefreshInterval)
	go priceRefresher.Start(ctx)

	srv := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Starting Daechul backend server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
