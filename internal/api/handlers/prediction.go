package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/patternlab/lotto-engine/internal/api/middleware"
	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/internal/services"
	"github.com/patternlab/lotto-engine/pkg/utils"
)

type PredictionHandler struct {
	predictions *services.PredictionService
}

func NewPredictionHandler(predictions *services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictions: predictions}
}

type generateRequest struct {
	GameType string   `json:"game_type" binding:"required"`
	Addons   []string `json:"addons"`
}

// Generate runs the ten-pillar analysis and persists the result
// POST /api/v1/predictions
func (h *PredictionHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	addons := make([]engine.Addon, 0, len(req.Addons))
	seen := make(map[string]bool, len(req.Addons))
	for _, name := range req.Addons {
		if !engine.ValidAddon(name) {
			utils.SendValidationError(c, "Unknown add-on", fmt.Sprintf("add-on %q is not supported", name))
			return
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		addons = append(addons, engine.Addon(name))
	}

	prediction, err := h.predictions.Generate(c.Request.Context(), services.PredictionRequest{
		GameType: req.GameType,
		UserID:   middleware.UserID(c),
		Addons:   addons,
	})
	if err != nil {
		if errors.Is(err, engine.ErrGameNotFound) {
			utils.SendError(c, 404, utils.NewAppError(utils.ErrCodeGameNotFound, "Unknown game type", req.GameType))
			return
		}
		utils.SendError(c, 500, utils.NewAppError(utils.ErrCodePrediction, "Failed to generate prediction, please try again"))
		return
	}

	utils.SendSuccess(c, prediction)
}

// List returns the caller's recent predictions
// GET /api/v1/predictions
func (h *PredictionHandler) List(c *gin.Context) {
	predictions, err := h.predictions.Recent(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.SendInternalError(c, "Failed to load predictions")
		return
	}
	utils.SendSuccess(c, predictions)
}

// Get returns one owned prediction
// GET /api/v1/predictions/:id
func (h *PredictionHandler) Get(c *gin.Context) {
	prediction, err := h.predictions.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Prediction not found")
			return
		}
		utils.SendInternalError(c, "Failed to load prediction")
		return
	}
	utils.SendSuccess(c, prediction)
}
