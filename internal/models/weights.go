package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/pkg/database"
)

// UserWeights is a user's saved algorithm-weight split. It is a preference
// row only; the prediction pipeline runs on its own fixed internal weights.
type UserWeights struct {
	UserID             string    `gorm:"primaryKey;size:64" json:"user_id"`
	PresetID           string    `gorm:"size:50" json:"preset_id,omitempty"`
	Statistical        float64   `gorm:"not null" json:"statistical"`
	Frequency          float64   `gorm:"not null" json:"frequency"`
	GapAnalysis        float64   `gorm:"not null" json:"gap_analysis"`
	PatternRecognition float64   `gorm:"not null" json:"pattern_recognition"`
	DeepLearning       float64   `gorm:"not null" json:"deep_learning"`
	CosmicIntelligence float64   `gorm:"not null" json:"cosmic_intelligence"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (UserWeights) TableName() string {
	return "user_weights"
}

// Weights converts the row into the engine's weight shape.
func (u *UserWeights) Weights() engine.AlgorithmWeights {
	return engine.AlgorithmWeights{
		Statistical:        u.Statistical,
		Frequency:          u.Frequency,
		GapAnalysis:        u.GapAnalysis,
		PatternRecognition: u.PatternRecognition,
		DeepLearning:       u.DeepLearning,
		CosmicIntelligence: u.CosmicIntelligence,
	}
}

func (u *UserWeights) setWeights(w engine.AlgorithmWeights) {
	u.Statistical = w.Statistical
	u.Frequency = w.Frequency
	u.GapAnalysis = w.GapAnalysis
	u.PatternRecognition = w.PatternRecognition
	u.DeepLearning = w.DeepLearning
	u.CosmicIntelligence = w.CosmicIntelligence
}

// GetUserWeights fetches a user's saved weights, creating the balanced
// default row on first access.
func GetUserWeights(db *database.DB, userID string) (*UserWeights, error) {
	var row UserWeights
	err := db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = UserWeights{UserID: userID, PresetID: "balanced"}
		row.setWeights(engine.DefaultWeights())
		if err := db.Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SaveUserWeights replaces a user's weight split. The weights must already
// be validated by the caller.
func SaveUserWeights(db *database.DB, userID, presetID string, w engine.AlgorithmWeights) (*UserWeights, error) {
	row, err := GetUserWeights(db, userID)
	if err != nil {
		return nil, err
	}
	row.PresetID = presetID
	row.setWeights(w)
	if err := db.Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
