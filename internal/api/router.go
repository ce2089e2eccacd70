package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/patternlab/lotto-engine/internal/api/handlers"
	"github.com/patternlab/lotto-engine/internal/api/middleware"
	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/internal/services"
	"github.com/patternlab/lotto-engine/pkg/config"
	"github.com/patternlab/lotto-engine/pkg/database"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, db *database.DB, cache *services.CacheService, wsHub *services.WebSocketHub, cfg *config.Config, predictionEngine *engine.Engine) {
	// Initialize services
	predictionService := services.NewPredictionService(
		db, cache, wsHub, predictionEngine, logrus.StandardLogger(),
		time.Duration(cfg.PredictionCacheTTL)*time.Second, cfg.RecentPredictionMax,
	)

	// Initialize handlers
	gamesHandler := handlers.NewGamesHandler(db, cache)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	weightsHandler := handlers.NewWeightsHandler(db, cache)

	rateLimiter := middleware.NewPredictionRateLimiter(cfg.PredictionsPerHour)

	// Game catalog endpoints (public)
	group.GET("/games", gamesHandler.ListGames)
	group.GET("/games/:id", gamesHandler.GetGame)
	group.GET("/games/:id/draws", gamesHandler.GetDrawHistory)

	// Weight preset endpoints (public)
	group.GET("/weights/presets", weightsHandler.ListPresets)
	group.GET("/weights/presets/:id", weightsHandler.GetPreset)
	group.POST("/weights/recommend", weightsHandler.Recommend)

	// Prediction endpoints (optional auth; anonymous traffic shares one
	// rate-limit bucket)
	predGroup := group.Group("/predictions")
	predGroup.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		predGroup.POST("", rateLimiter.Middleware(), predictionHandler.Generate)
		predGroup.GET("", predictionHandler.List)
		predGroup.GET("/:id", predictionHandler.Get)
	}

	// User weight endpoints (optional auth)
	weightGroup := group.Group("/weights")
	weightGroup.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		weightGroup.GET("", weightsHandler.GetWeights)
		weightGroup.PUT("", weightsHandler.UpdateWeights)
	}
}
