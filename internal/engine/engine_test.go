package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeUnknownGame(t *testing.T) {
	e := newTestEngine(1)
	analysis, err := e.Analyze("bingo", nil, nil)
	assert.Nil(t, analysis)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestAnalyzePowerballNoAddons(t *testing.T) {
	e := newTestEngine(12)
	for run := 0; run < 2000; run++ {
		analysis, err := e.Analyze("powerball", nil, nil)
		require.NoError(t, err)

		cfg, _ := GetGameConfig("powerball")
		assertValidSet(t, cfg, analysis.RecommendedNumbers)
		assert.GreaterOrEqual(t, analysis.SpecialBall, 1)
		assert.LessOrEqual(t, analysis.SpecialBall, 26)
		assert.GreaterOrEqual(t, analysis.UnifiedScore, 0.10)
		assert.LessOrEqual(t, analysis.UnifiedScore, 0.90)
		assert.Len(t, analysis.Pillars, PillarCount)
		assert.NotEmpty(t, analysis.Explanation)
		assert.Contains(t, []ConfidenceLevel{ConfidenceLow, ConfidenceMedium, ConfidenceHigh}, analysis.ConfidenceLevel)

		// Without add-ons the tier derives from the unified score alone.
		assert.Equal(t, ConfidenceFor(analysis.UnifiedScore, 0), analysis.ConfidenceLevel)
	}
}

func TestAnalyzePowerballAllAddons(t *testing.T) {
	e := newTestEngine(13)
	addons := []Addon{AddonCosmicIntelligence, AddonClaudeNexus, AddonPremiumEnhancement}

	rank := map[ConfidenceLevel]int{ConfidenceLow: 0, ConfidenceMedium: 1, ConfidenceHigh: 2}
	for run := 0; run < 1000; run++ {
		analysis, err := e.Analyze("powerball", nil, addons)
		require.NoError(t, err)

		cfg, _ := GetGameConfig("powerball")
		assertValidSet(t, cfg, analysis.RecommendedNumbers)

		// For the identical unified score, the with-addons tier can never
		// rank below the no-addon tier.
		withoutAddons := ConfidenceFor(analysis.UnifiedScore, 0)
		assert.GreaterOrEqual(t, rank[analysis.ConfidenceLevel], rank[withoutAddons])
	}
}

func TestAnalyzeRepeatedAddonCountsOnce(t *testing.T) {
	run := func(addons []Addon) *TenPillarAnalysis {
		e := New(WithRandSource(rand.NewSource(99)), WithClock(fixedClock(10)))
		analysis, err := e.Analyze("powerball", nil, addons)
		require.NoError(t, err)
		return analysis
	}

	single := run([]Addon{AddonCosmicIntelligence})
	repeated := run([]Addon{
		AddonCosmicIntelligence, AddonCosmicIntelligence, AddonCosmicIntelligence,
		AddonCosmicIntelligence, AddonCosmicIntelligence,
	})

	// A repeated add-on is the same add-on: no extra confidence bonus, no
	// extra perturbation pass.
	assert.Equal(t, single.ConfidenceLevel, repeated.ConfidenceLevel)
	assert.Equal(t, single.RecommendedNumbers, repeated.RecommendedNumbers)
	assert.Equal(t, single.UnifiedScore, repeated.UnifiedScore)
	assert.Equal(t, single.Explanation, repeated.Explanation)

	// The tier still matches counting one distinct add-on.
	assert.Equal(t, ConfidenceFor(repeated.UnifiedScore, 1), repeated.ConfidenceLevel)
}

func TestAnalyzeGameWithoutSpecialBall(t *testing.T) {
	e := newTestEngine(14)
	analysis, err := e.Analyze("pick_six", nil, nil)
	require.NoError(t, err)

	cfg, _ := GetGameConfig("pick_six")
	assertValidSet(t, cfg, analysis.RecommendedNumbers)
	assert.Zero(t, analysis.SpecialBall)
}

func TestAnalyzeDeterministicWithFixedSeed(t *testing.T) {
	run := func() *TenPillarAnalysis {
		e := New(WithRandSource(rand.NewSource(777)), WithClock(fixedClock(10)))
		analysis, err := e.Analyze("mega_millions", nil, []Addon{AddonCosmicIntelligence})
		require.NoError(t, err)
		return analysis
	}

	first := run()
	second := run()
	assert.Equal(t, first.RecommendedNumbers, second.RecommendedNumbers)
	assert.Equal(t, first.UnifiedScore, second.UnifiedScore)
	assert.Equal(t, first.SpecialBall, second.SpecialBall)
	assert.Equal(t, first.Explanation, second.Explanation)
}

func TestTopPillars(t *testing.T) {
	pillars := []PillarResult{
		{Name: "a", Score: 0.70},
		{Name: "b", Score: 0.90},
		{Name: "c", Score: 0.80},
		{Name: "d", Score: 0.85},
	}
	top := TopPillars(pillars, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "b", top[0].Name)
	assert.Equal(t, "d", top[1].Name)
	assert.Equal(t, "c", top[2].Name)

	// Input order is untouched.
	assert.Equal(t, "a", pillars[0].Name)
}
