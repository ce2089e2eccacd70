package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/pkg/database"
)

// Prediction is the externally persisted record of one pipeline run.
// Immutable after creation.
type Prediction struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	UserID          string         `gorm:"not null;index:idx_user_created" json:"user_id"`
	GameType        string         `gorm:"size:50;not null" json:"game_type"`
	Numbers         datatypes.JSON `gorm:"not null" json:"numbers"`
	SpecialBall     int            `json:"special_ball,omitempty"`
	UnifiedScore    float64        `gorm:"not null" json:"unified_score"`
	ConfidenceLevel string         `gorm:"size:20;not null" json:"confidence_level"`
	AddonsUsed      datatypes.JSON `json:"addons_used"`
	Explanation     string         `gorm:"type:text" json:"explanation"`
	PillarSummary   datatypes.JSON `json:"pillar_analysis,omitempty"`
	CreatedAt       time.Time      `gorm:"index:idx_user_created" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Prediction) TableName() string {
	return "predictions"
}

// PillarSummary is the condensed pillar view stored alongside a prediction.
type PillarSummary struct {
	TopPillars   []string `json:"top_pillars"`
	UnifiedScore float64  `json:"unified_score"`
	PillarCount  int      `json:"pillar_count"`
}

// NewPrediction builds a persistable row from an engine analysis.
func NewPrediction(userID, gameType string, analysis *engine.TenPillarAnalysis, addons []engine.Addon) (*Prediction, error) {
	numbers, err := json.Marshal(analysis.RecommendedNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode numbers: %w", err)
	}

	addonNames := make([]string, 0, len(addons))
	for _, a := range addons {
		addonNames = append(addonNames, string(a))
	}
	addonsJSON, err := json.Marshal(addonNames)
	if err != nil {
		return nil, fmt.Errorf("failed to encode addons: %w", err)
	}

	top := engine.TopPillars(analysis.Pillars, 3)
	topNames := make([]string, 0, len(top))
	for _, p := range top {
		topNames = append(topNames, p.Name)
	}
	summary, err := json.Marshal(PillarSummary{
		TopPillars:   topNames,
		UnifiedScore: analysis.UnifiedScore,
		PillarCount:  len(analysis.Pillars),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode pillar summary: %w", err)
	}

	return &Prediction{
		ID:              uuid.NewString(),
		UserID:          userID,
		GameType:        gameType,
		Numbers:         datatypes.JSON(numbers),
		SpecialBall:     analysis.SpecialBall,
		UnifiedScore:    analysis.UnifiedScore,
		ConfidenceLevel: string(analysis.ConfidenceLevel),
		AddonsUsed:      datatypes.JSON(addonsJSON),
		Explanation:     analysis.Explanation,
		PillarSummary:   datatypes.JSON(summary),
	}, nil
}

// DecodeNumbers unpacks the stored number set.
func (p *Prediction) DecodeNumbers() ([]int, error) {
	var numbers []int
	if err := json.Unmarshal(p.Numbers, &numbers); err != nil {
		return nil, fmt.Errorf("failed to decode numbers: %w", err)
	}
	return numbers, nil
}

// DecodeAddons unpacks the stored add-on names.
func (p *Prediction) DecodeAddons() ([]string, error) {
	if len(p.AddonsUsed) == 0 {
		return nil, nil
	}
	var addons []string
	if err := json.Unmarshal(p.AddonsUsed, &addons); err != nil {
		return nil, fmt.Errorf("failed to decode addons: %w", err)
	}
	return addons, nil
}

// GetRecentPredictions fetches a user's latest predictions, newest first.
func GetRecentPredictions(db *database.DB, userID string, limit int) ([]Prediction, error) {
	var predictions []Prediction
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&predictions).Error
	return predictions, err
}

// GetPrediction fetches one prediction by id, scoped to its owner.
func GetPrediction(db *database.DB, userID, id string) (*Prediction, error) {
	var prediction Prediction
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&prediction).Error
	if err != nil {
		return nil, err
	}
	return &prediction, nil
}

// CountPredictions returns the user's lifetime prediction count.
func CountPredictions(db *database.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&Prediction{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
