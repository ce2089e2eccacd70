package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/patternlab/lotto-engine/internal/api/middleware"
	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/internal/models"
	"github.com/patternlab/lotto-engine/internal/services"
	"github.com/patternlab/lotto-engine/pkg/database"
	"github.com/patternlab/lotto-engine/pkg/utils"
)

type WeightsHandler struct {
	db    *database.DB
	cache *services.CacheService
}

func NewWeightsHandler(db *database.DB, cache *services.CacheService) *WeightsHandler {
	return &WeightsHandler{db: db, cache: cache}
}

// ListPresets returns the built-in weight presets
// GET /api/v1/weights/presets
func (h *WeightsHandler) ListPresets(c *gin.Context) {
	utils.SendSuccess(c, engine.ListWeightPresets())
}

// GetPreset returns one named preset
// GET /api/v1/weights/presets/:id
func (h *WeightsHandler) GetPreset(c *gin.Context) {
	preset, err := engine.GetWeightPreset(c.Param("id"))
	if err != nil {
		if errors.Is(err, engine.ErrPresetNotFound) {
			utils.SendNotFound(c, "Weight preset not found")
			return
		}
		utils.SendInternalError(c, "Failed to resolve preset")
		return
	}
	utils.SendSuccess(c, preset)
}

type recommendRequest struct {
	PrefersData      bool `json:"prefers_data"`
	PrefersPatterns  bool `json:"prefers_patterns"`
	PrefersIntuition bool `json:"prefers_intuition"`
}

// Recommend picks a preset matching the caller's stated preferences
// POST /api/v1/weights/recommend
func (h *WeightsHandler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	utils.SendSuccess(c, engine.RecommendPreset(engine.UserWeightPrefs{
		PrefersData:      req.PrefersData,
		PrefersPatterns:  req.PrefersPatterns,
		PrefersIntuition: req.PrefersIntuition,
	}))
}

// GetWeights returns the caller's saved weights
// GET /api/v1/weights
func (h *WeightsHandler) GetWeights(c *gin.Context) {
	row, err := models.GetUserWeights(h.db, middleware.UserID(c))
	if err != nil {
		utils.SendInternalError(c, "Failed to load weights")
		return
	}
	utils.SendSuccess(c, gin.H{
		"weights":     row.Weights(),
		"preset_id":   row.PresetID,
		"description": row.Weights().Describe(),
	})
}

type updateWeightsRequest struct {
	PresetID string `json:"preset_id"`

	Statistical        *float64 `json:"statistical"`
	Frequency          *float64 `json:"frequency"`
	GapAnalysis        *float64 `json:"gap_analysis"`
	PatternRecognition *float64 `json:"pattern_recognition"`
	DeepLearning       *float64 `json:"deep_learning"`
	CosmicIntelligence *float64 `json:"cosmic_intelligence"`

	Normalize bool `json:"normalize"`
}

// UpdateWeights saves a preset or a custom split for the caller
// PUT /api/v1/weights
func (h *WeightsHandler) UpdateWeights(c *gin.Context) {
	var req updateWeightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	userID := middleware.UserID(c)

	// Preset selection wins when no custom values are supplied.
	if req.PresetID != "" && req.Statistical == nil {
		preset, err := engine.GetWeightPreset(req.PresetID)
		if err != nil {
			utils.SendNotFound(c, "Weight preset not found")
			return
		}
		row, err := models.SaveUserWeights(h.db, userID, preset.ID, preset.Weights)
		if err != nil {
			utils.SendInternalError(c, "Failed to save weights")
			return
		}
		h.invalidate(c, userID)
		utils.SendSuccess(c, row)
		return
	}

	custom := engine.AlgorithmWeights{
		Statistical:        deref(req.Statistical),
		Frequency:          deref(req.Frequency),
		GapAnalysis:        deref(req.GapAnalysis),
		PatternRecognition: deref(req.PatternRecognition),
		DeepLearning:       deref(req.DeepLearning),
		CosmicIntelligence: deref(req.CosmicIntelligence),
	}
	if req.Normalize {
		custom = custom.Normalize()
	}

	if result := custom.Validate(); !result.Valid {
		utils.SendError(c, 400, utils.NewAppError(utils.ErrCodeInvalidWeights,
			"Invalid weight configuration", strings.Join(result.Errors, "; ")))
		return
	}

	row, err := models.SaveUserWeights(h.db, userID, "custom", custom)
	if err != nil {
		utils.SendInternalError(c, "Failed to save weights")
		return
	}
	h.invalidate(c, userID)
	utils.SendSuccess(c, row)
}

func (h *WeightsHandler) invalidate(c *gin.Context, userID string) {
	_ = h.cache.Delete(c.Request.Context(), services.UserWeightsCacheKey(userID))
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
