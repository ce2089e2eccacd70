package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(day int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 9, day, 12, 0, 0, 0, time.UTC)
	}
}

func TestValidAddon(t *testing.T) {
	assert.True(t, ValidAddon("cosmic_intelligence"))
	assert.True(t, ValidAddon("claude_nexus"))
	assert.True(t, ValidAddon("premium_enhancement"))
	assert.False(t, ValidAddon("turbo_mode"))
	assert.False(t, ValidAddon(""))
}

func TestApplyAddonsPreservesInvariants(t *testing.T) {
	cfg, err := GetGameConfig("powerball")
	require.NoError(t, err)

	combos := [][]Addon{
		nil,
		{AddonCosmicIntelligence},
		{AddonClaudeNexus},
		{AddonPremiumEnhancement},
		{AddonCosmicIntelligence, AddonClaudeNexus},
		{AddonCosmicIntelligence, AddonClaudeNexus, AddonPremiumEnhancement},
	}

	for day := 1; day <= 28; day += 9 {
		e := New(WithRandSource(rand.NewSource(int64(day))), WithClock(fixedClock(day)))
		for _, addons := range combos {
			for run := 0; run < 500; run++ {
				base := e.randomSet(cfg)
				out := e.applyAddons(cfg, base, addons)
				assertValidSet(t, cfg, out)
			}
		}
	}
}

func TestApplyAddonsDoesNotMutateInput(t *testing.T) {
	e := New(WithRandSource(rand.NewSource(4)), WithClock(fixedClock(15)))
	cfg, err := GetGameConfig("powerball")
	require.NoError(t, err)

	base := []int{5, 17, 29, 41, 63}
	snapshot := append([]int(nil), base...)
	e.applyAddons(cfg, base, []Addon{AddonCosmicIntelligence, AddonClaudeNexus, AddonPremiumEnhancement})
	assert.Equal(t, snapshot, base)
}

func TestCosmicIntelligenceReplacesAtMostTwo(t *testing.T) {
	cfg, err := GetGameConfig("powerball")
	require.NoError(t, err)

	for seed := int64(0); seed < 50; seed++ {
		e := New(WithRandSource(rand.NewSource(seed)), WithClock(fixedClock(21)))
		base := []int{5, 17, 29, 41, 63}
		out := e.applyCosmicIntelligence(cfg, append([]int(nil), base...))

		changed := 0
		for i := range base {
			if out[i] != base[i] {
				changed++
			}
		}
		assert.LessOrEqual(t, changed, 2)
	}
}

func TestConfidenceMonotonicInAddons(t *testing.T) {
	rank := map[ConfidenceLevel]int{ConfidenceLow: 0, ConfidenceMedium: 1, ConfidenceHigh: 2}

	for _, score := range []float64{0.10, 0.60, 0.70, 0.74, 0.76, 0.80, 0.84, 0.90} {
		prev := ConfidenceFor(score, 0)
		for addons := 1; addons <= 3; addons++ {
			level := ConfidenceFor(score, addons)
			assert.GreaterOrEqual(t, rank[level], rank[prev],
				"confidence dropped at score %.2f with %d addons", score, addons)
			prev = level
		}
	}
}

func TestConfidenceThresholds(t *testing.T) {
	tests := []struct {
		score  float64
		addons int
		want   ConfidenceLevel
	}{
		{0.90, 0, ConfidenceHigh},
		{0.85, 0, ConfidenceHigh},
		{0.84, 0, ConfidenceMedium},
		{0.75, 0, ConfidenceMedium},
		{0.74, 0, ConfidenceLow},
		{0.10, 0, ConfidenceLow},
		{0.80, 1, ConfidenceHigh},  // 0.80 + 0.05
		{0.70, 1, ConfidenceMedium},
		{0.70, 3, ConfidenceHigh}, // 0.70 + 0.15
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceFor(tt.score, tt.addons),
			"score %.2f addons %d", tt.score, tt.addons)
	}
}

func TestFrequencyAndPatternPasses(t *testing.T) {
	cfg := &GameConfig{ID: "mini", Count: 3, Min: 1, Max: 30}
	votes := map[int]float64{1: 1.0, 2: 0.9, 3: 0.1, 20: 0.8, 21: 0.7, 22: 0.6}

	pillars := make([]PillarResult, PillarCount)
	for i := range pillars {
		pillars[i] = PillarResult{Name: pillarSpecs[i].name, Numbers: []int{1, 2, 3}}
	}

	// Full overlap: the pass leaves the selection alone.
	out := applyFrequencyPass([]int{1, 2, 3}, pillars, votes)
	assert.Equal(t, []int{1, 2, 3}, out)

	// Low overlap: the frequency pillar's strongest unselected pick evicts
	// the weakest-voted selected number.
	freq := pillarByName(pillars, "Frequency Distribution Analysis")
	require.NotNil(t, freq)
	freq.Numbers = []int{20, 21, 22}
	out = applyFrequencyPass([]int{1, 2, 3}, pillars, votes)
	assert.Equal(t, []int{1, 2, 20}, out)
	assertValidSet(t, cfg, out)
}
