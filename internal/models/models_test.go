package models

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/pkg/database"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Prediction{}, &HistoricalDraw{}, &UserWeights{}))
	return &database.DB{DB: db}
}

func testAnalysis(t *testing.T) *engine.TenPillarAnalysis {
	t.Helper()
	e := engine.New(engine.WithRandSource(rand.NewSource(42)))
	analysis, err := e.Analyze("powerball", nil, []engine.Addon{engine.AddonCosmicIntelligence})
	require.NoError(t, err)
	return analysis
}

func TestPredictionRoundTrip(t *testing.T) {
	db := openTestDB(t)
	analysis := testAnalysis(t)

	prediction, err := NewPrediction("user-1", "powerball", analysis, []engine.Addon{engine.AddonCosmicIntelligence})
	require.NoError(t, err)
	require.NotEmpty(t, prediction.ID)
	require.NoError(t, db.Create(prediction).Error)

	fetched, err := GetPrediction(db, "user-1", prediction.ID)
	require.NoError(t, err)
	assert.Equal(t, prediction.ID, fetched.ID)
	assert.Equal(t, "powerball", fetched.GameType)
	assert.Equal(t, string(analysis.ConfidenceLevel), fetched.ConfidenceLevel)

	numbers, err := fetched.DecodeNumbers()
	require.NoError(t, err)
	assert.Equal(t, analysis.RecommendedNumbers, numbers)

	addons, err := fetched.DecodeAddons()
	require.NoError(t, err)
	assert.Equal(t, []string{"cosmic_intelligence"}, addons)
}

func TestPredictionOwnerScoping(t *testing.T) {
	db := openTestDB(t)
	analysis := testAnalysis(t)

	prediction, err := NewPrediction("user-1", "powerball", analysis, nil)
	require.NoError(t, err)
	require.NoError(t, db.Create(prediction).Error)

	_, err = GetPrediction(db, "someone-else", prediction.ID)
	assert.Error(t, err)
}

func TestGetRecentPredictionsOrder(t *testing.T) {
	db := openTestDB(t)
	analysis := testAnalysis(t)

	for i := 0; i < 5; i++ {
		p, err := NewPrediction("user-1", "powerball", analysis, nil)
		require.NoError(t, err)
		p.CreatedAt = time.Date(2026, 8, 1+i, 0, 0, 0, 0, time.UTC)
		require.NoError(t, db.Create(p).Error)
	}

	recent, err := GetRecentPredictions(db, "user-1", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.True(t, recent[0].CreatedAt.After(recent[1].CreatedAt))
	assert.True(t, recent[1].CreatedAt.After(recent[2].CreatedAt))

	count, err := CountPredictions(db, "user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
}

func TestHistoricalDrawRoundTrip(t *testing.T) {
	db := openTestDB(t)

	draw, err := NewHistoricalDraw("powerball", []int{4, 18, 26, 41, 67}, 13,
		time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, UpsertDraws(db, []HistoricalDraw{*draw}))

	rows, err := GetRecentDraws(db, "powerball", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	engineDraws := ToEngineDraws(rows)
	require.Len(t, engineDraws, 1)
	assert.Equal(t, []int{4, 18, 26, 41, 67}, engineDraws[0].Numbers)
	assert.Equal(t, 13, engineDraws[0].SpecialBall)
}

func TestDeleteDrawsBefore(t *testing.T) {
	db := openTestDB(t)

	old, err := NewHistoricalDraw("powerball", []int{1, 2, 3, 4, 5}, 1,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	fresh, err := NewHistoricalDraw("powerball", []int{6, 7, 8, 9, 10}, 2,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, UpsertDraws(db, []HistoricalDraw{*old, *fresh}))

	deleted, err := DeleteDrawsBefore(db, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	rows, err := GetRecentDraws(db, "powerball", 10)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUserWeightsDefaultsAndSave(t *testing.T) {
	db := openTestDB(t)

	row, err := GetUserWeights(db, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "balanced", row.PresetID)
	assert.Equal(t, engine.DefaultWeights(), row.Weights())

	custom, errs := engine.CreateCustomWeights(40, 20, 10, 10, 10, 10)
	require.Empty(t, errs)
	saved, err := SaveUserWeights(db, "user-1", "custom", *custom)
	require.NoError(t, err)
	assert.Equal(t, "custom", saved.PresetID)

	reloaded, err := GetUserWeights(db, "user-1")
	require.NoError(t, err)
	assert.Equal(t, *custom, reloaded.Weights())
}
