package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/internal/models"
	"github.com/patternlab/lotto-engine/internal/services"
	"github.com/patternlab/lotto-engine/pkg/database"
	"github.com/patternlab/lotto-engine/pkg/utils"
)

type GamesHandler struct {
	db    *database.DB
	cache *services.CacheService
}

func NewGamesHandler(db *database.DB, cache *services.CacheService) *GamesHandler {
	return &GamesHandler{db: db, cache: cache}
}

// ListGames returns the full game catalog
// GET /api/v1/games
func (h *GamesHandler) ListGames(c *gin.Context) {
	utils.SendSuccess(c, engine.ListGameConfigs())
}

// GetGame returns one game's configuration
// GET /api/v1/games/:id
func (h *GamesHandler) GetGame(c *gin.Context) {
	cfg, err := engine.GetGameConfig(c.Param("id"))
	if err != nil {
		if errors.Is(err, engine.ErrGameNotFound) {
			utils.SendError(c, 404, utils.NewAppError(utils.ErrCodeGameNotFound, "Unknown game type", c.Param("id")))
			return
		}
		utils.SendInternalError(c, "Failed to resolve game")
		return
	}
	utils.SendSuccess(c, cfg)
}

// GetDrawHistory returns recent drawings for a game
// GET /api/v1/games/:id/draws
func (h *GamesHandler) GetDrawHistory(c *gin.Context) {
	gameID := c.Param("id")
	if _, err := engine.GetGameConfig(gameID); err != nil {
		utils.SendError(c, 404, utils.NewAppError(utils.ErrCodeGameNotFound, "Unknown game type", gameID))
		return
	}

	key := services.DrawHistoryCacheKey(gameID)
	var cached []models.HistoricalDraw
	if err := h.cache.Get(c.Request.Context(), key, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	draws, err := models.GetRecentDraws(h.db, gameID, 50)
	if err != nil {
		utils.SendInternalError(c, "Failed to load draw history")
		return
	}

	if err := h.cache.Set(c.Request.Context(), key, draws, 10*time.Minute); err != nil {
		logrus.Warnf("Failed to cache draw history: %v", err)
	}
	utils.SendSuccess(c, draws)
}
