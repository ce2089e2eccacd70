package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"

	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/pkg/database"
)

// HistoricalDraw is one past drawing pulled from the results provider.
type HistoricalDraw struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	GameType    string         `gorm:"size:50;not null;uniqueIndex:idx_game_draw_date" json:"game_type"`
	Numbers     datatypes.JSON `gorm:"not null" json:"numbers"`
	SpecialBall int            `json:"special_ball,omitempty"`
	DrawDate    time.Time      `gorm:"not null;uniqueIndex:idx_game_draw_date" json:"draw_date"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TableName specifies the table name for GORM
func (HistoricalDraw) TableName() string {
	return "historical_draws"
}

// NewHistoricalDraw encodes a raw drawing for storage.
func NewHistoricalDraw(gameType string, numbers []int, specialBall int, drawDate time.Time) (*HistoricalDraw, error) {
	encoded, err := json.Marshal(numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draw numbers: %w", err)
	}
	return &HistoricalDraw{
		GameType:    gameType,
		Numbers:     datatypes.JSON(encoded),
		SpecialBall: specialBall,
		DrawDate:    drawDate,
	}, nil
}

// ToEngineDraw converts a stored row into the engine's draw shape.
func (d *HistoricalDraw) ToEngineDraw() (engine.Draw, error) {
	var numbers []int
	if err := json.Unmarshal(d.Numbers, &numbers); err != nil {
		return engine.Draw{}, fmt.Errorf("failed to decode draw numbers: %w", err)
	}
	return engine.Draw{
		Numbers:     numbers,
		SpecialBall: d.SpecialBall,
		DrawDate:    d.DrawDate,
	}, nil
}

// UpsertDraws stores a batch of drawings, ignoring ones already present
// for the same game and date.
func UpsertDraws(db *database.DB, draws []HistoricalDraw) error {
	if len(draws) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&draws).Error
}

// GetRecentDraws fetches the latest drawings for a game, newest first.
func GetRecentDraws(db *database.DB, gameType string, limit int) ([]HistoricalDraw, error) {
	var draws []HistoricalDraw
	err := db.Where("game_type = ?", gameType).
		Order("draw_date DESC").
		Limit(limit).
		Find(&draws).Error
	return draws, err
}

// ToEngineDraws converts stored rows, skipping any that fail to decode.
func ToEngineDraws(rows []HistoricalDraw) []engine.Draw {
	draws := make([]engine.Draw, 0, len(rows))
	for i := range rows {
		draw, err := rows[i].ToEngineDraw()
		if err != nil {
			continue
		}
		draws = append(draws, draw)
	}
	return draws
}

// DeleteDrawsBefore removes drawings older than the cutoff.
func DeleteDrawsBefore(db *database.DB, cutoff time.Time) (int64, error) {
	result := db.Where("draw_date < ?", cutoff).Delete(&HistoricalDraw{})
	return result.RowsAffected, result.Error
}
