package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/internal/models"
	"github.com/patternlab/lotto-engine/pkg/database"
)

const historyWindow = 50

// PredictionRequest is the adapter-level input to one pipeline run.
type PredictionRequest struct {
	GameType string
	UserID   string
	Addons   []engine.Addon
}

// PredictionService runs the pure engine pipeline, then persists, caches,
// and broadcasts the result as separate steps.
type PredictionService struct {
	db       *database.DB
	cache    *CacheService
	hub      *WebSocketHub
	engine   *engine.Engine
	logger   *logrus.Logger
	cacheTTL time.Duration
	recent   int
}

func NewPredictionService(db *database.DB, cache *CacheService, hub *WebSocketHub, e *engine.Engine, logger *logrus.Logger, cacheTTL time.Duration, recentMax int) *PredictionService {
	return &PredictionService{
		db:       db,
		cache:    cache,
		hub:      hub,
		engine:   e,
		logger:   logger,
		cacheTTL: cacheTTL,
		recent:   recentMax,
	}
}

// Generate runs the ten-pillar analysis for the request and persists the
// result. The engine itself never touches storage; a failed write leaves
// nothing to retry inside the pipeline.
func (s *PredictionService) Generate(ctx context.Context, req PredictionRequest) (*models.Prediction, error) {
	draws := s.loadHistory(req.GameType)

	analysis, err := s.engine.Analyze(req.GameType, draws, req.Addons)
	if err != nil {
		return nil, err
	}

	prediction, err := models.NewPrediction(req.UserID, req.GameType, analysis, req.Addons)
	if err != nil {
		return nil, fmt.Errorf("failed to build prediction record: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(prediction).Error; err != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id":   req.UserID,
			"game_type": req.GameType,
		}).Errorf("Failed to persist prediction: %v", err)
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}

	if err := s.cache.Delete(ctx, RecentPredictionsCacheKey(req.UserID)); err != nil {
		s.logger.Warnf("Failed to invalidate prediction cache: %v", err)
	}

	if s.hub != nil {
		s.hub.BroadcastEvent("prediction.created", TopicPredictions, prediction)
	}

	s.logger.WithFields(logrus.Fields{
		"prediction_id": prediction.ID,
		"game_type":     req.GameType,
		"confidence":    prediction.ConfidenceLevel,
	}).Info("Prediction generated")

	return prediction, nil
}

// Recent returns the user's latest predictions, served from cache when
// possible.
func (s *PredictionService) Recent(ctx context.Context, userID string) ([]models.Prediction, error) {
	key := RecentPredictionsCacheKey(userID)

	var cached []models.Prediction
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	predictions, err := models.GetRecentPredictions(s.db, userID, s.recent)
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}

	if err := s.cache.Set(ctx, key, predictions, s.cacheTTL); err != nil {
		s.logger.Warnf("Failed to cache predictions: %v", err)
	}

	return predictions, nil
}

// Get fetches a single owned prediction.
func (s *PredictionService) Get(ctx context.Context, userID, id string) (*models.Prediction, error) {
	return models.GetPrediction(s.db, userID, id)
}

// loadHistory pulls recent drawings for the game. History is optional
// context for the engine; a failed load degrades to an empty history.
func (s *PredictionService) loadHistory(gameType string) []engine.Draw {
	rows, err := models.GetRecentDraws(s.db, gameType, historyWindow)
	if err != nil {
		s.logger.Warnf("Failed to load draw history for %s: %v", gameType, err)
		return nil
	}
	return models.ToEngineDraws(rows)
}
