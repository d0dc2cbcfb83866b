package main

import (
	"campus-rewards/internal/cache"
	"campus-rewards/internal/middleware"
	"campus-rewards/internal/repository"
	"campus-rewards/internal/service"
	"campus-rewards/pkg/config"
	"campus-rewards/pkg/database"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoDB, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoDB.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	log.Println("✅ Connected to MongoDB successfully")

	// Leaderboard cache is optional; without Redis every read hits Mongo
	var leaderboardCache *cache.LeaderboardCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		leaderboardCache = cache.NewLeaderboardCache(redisClient, time.Duration(cfg.LeaderboardCacheTTL)*time.Second)
		log.Println("✅ Connected to Redis successfully")
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(mongoDB.Database)
	rewardRepo := repository.NewRewardRepository(mongoDB.Database)
	transactionRepo := repository.NewTransactionRepository(mongoDB.Database)
	redemptionRepo := repository.NewRedemptionRepository(mongoDB.Database)

	// Initialize services; multi-document writes share one unit of work
	uow := database.NewUnitOfWork(mongoDB.Client)
	ledgerSvc := service.NewLedgerService(profileRepo, transactionRepo, uow)
	redemptionSvc := service.NewRedemptionService(rewardRepo, profileRepo, transactionRepo, redemptionRepo, uow)
	catalogSvc := service.NewCatalogService(rewardRepo)
	leaderboardSvc := service.NewLeaderboardService(profileRepo, redemptionRepo, leaderboardCache)

	// Setup Gin router
	router := setupRouter(ledgerSvc, redemptionSvc, catalogSvc, leaderboardSvc, cfg.JWTSecret)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func setupRouter(
	ledgerSvc *service.LedgerService,
	redemptionSvc *service.RedemptionService,
	catalogSvc *service.CatalogService,
	leaderboardSvc *service.LeaderboardService,
	jwtSecret string,
) *gin.Engine {
	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api")
	{
		api.POST("/profiles", createProfileHandler(ledgerSvc))
		api.GET("/profiles/:userId", getProfileHandler(ledgerSvc))
		api.GET("/profiles/:userId/transactions", listTransactionsHandler(ledgerSvc))
		api.POST("/credits", creditHandler(ledgerSvc))
		api.GET("/rewards", listRewardsHandler(catalogSvc))
		api.GET("/rewards/available", listAvailableRewardsHandler(catalogSvc))
		api.POST("/rewards/redeem", redeemHandler(redemptionSvc))
		api.GET("/leaderboard", leaderboardHandler(leaderboardSvc))
		api.GET("/users/:userId/redeemed", listRedeemedHandler(leaderboardSvc))

		admin := api.Group("", middleware.RequireAdmin(jwtSecret))
		{
			admin.POST("/rewards", createRewardHandler(catalogSvc))
			admin.POST("/credits/adjust", adjustHandler(ledgerSvc))
		}
	}

	return router
}
