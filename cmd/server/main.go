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
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/patternlab/lotto-engine/internal/api"
	"github.com/patternlab/lotto-engine/internal/api/handlers"
	"github.com/patternlab/lotto-engine/internal/api/middleware"
	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/internal/providers"
	"github.com/patternlab/lotto-engine/internal/services"
	"github.com/patternlab/lotto-engine/pkg/config"
	"github.com/patternlab/lotto-engine/pkg/database"
	"github.com/patternlab/lotto-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	logger.InitLogger()
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize services
	cacheService := services.NewCacheService(redisClient)
	webSocketHub := services.NewWebSocketHub()
	go webSocketHub.Run()

	// Analysis engine
	predictionEngine := engine.New()

	// Historical draw pipeline
	resultsProvider := providers.NewLotteryAPIProvider(
		cfg.LotteryAPIBaseURL, cfg.LotteryAPIKey,
		cfg.ExternalAPITimeout, cfg.CircuitBreakerThreshold,
		logrus.StandardLogger(),
	)

	fetchInterval, err := time.ParseDuration(cfg.DrawFetchInterval)
	if err != nil {
		logrus.Warnf("Invalid fetch interval, using default 6h: %v", err)
		fetchInterval = 6 * time.Hour
	}

	drawFetcher := services.NewDrawFetcherService(
		db, cacheService, resultsProvider, logrus.StandardLogger(),
		fetchInterval, cfg.DrawRetentionDays,
	)
	if cfg.EnableBackgroundJobs {
		if err := drawFetcher.Start(!cfg.SkipInitialDrawFetch); err != nil {
			logrus.Errorf("Failed to start draw fetcher: %v", err)
		}
		defer drawFetcher.Stop()
	} else {
		logrus.Info("Background jobs disabled, skipping draw fetcher")
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Check)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, db, cacheService, webSocketHub, cfg, predictionEngine)

	// Setup WebSocket endpoint at root level (not under /api/v1)
	wsHandler := handlers.NewWebSocketHandler(webSocketHub)
	router.GET("/ws", middleware.OptionalAuth(cfg.JWTSecret), wsHandler.HandleWebSocket)

	// Log all registered routes
	logrus.Info("=== REGISTERED ROUTES ===")
	for _, route := range router.Routes() {
		logrus.Infof("%s %s", route.Method, route.Path)
	}
	logrus.Info("=========================")

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
