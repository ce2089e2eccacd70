package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPillarSpecsShape(t *testing.T) {
	require.Len(t, pillarSpecs, PillarCount)

	weightSum := 0.0
	seen := make(map[string]bool)
	for _, spec := range pillarSpecs {
		assert.False(t, seen[spec.name], "duplicate pillar name %s", spec.name)
		seen[spec.name] = true
		assert.Less(t, spec.scoreMin, spec.scoreMax, "%s score bounds", spec.name)
		assert.Less(t, spec.confMin, spec.confMax, "%s confidence bounds", spec.name)
		assert.NotEmpty(t, spec.explanation)
		weightSum += spec.weight
	}
	assert.InDelta(t, 1.0, weightSum, 0.001)
}

func TestEvaluatePillars(t *testing.T) {
	e := newTestEngine(99)
	for _, cfg := range ListGameConfigs() {
		for run := 0; run < 200; run++ {
			results := e.evaluatePillars(cfg, nil)
			require.Len(t, results, PillarCount)
			for i, result := range results {
				spec := pillarSpecs[i]
				assert.Equal(t, spec.name, result.Name)
				assert.GreaterOrEqual(t, result.Score, spec.scoreMin)
				assert.LessOrEqual(t, result.Score, spec.scoreMax)
				assert.GreaterOrEqual(t, result.Confidence, spec.confMin)
				assert.LessOrEqual(t, result.Confidence, spec.confMax)
				assert.Equal(t, spec.explanation, result.Explanation)
				assertValidSet(t, cfg, result.Numbers)
			}
		}
	}
}

func TestEvaluatePillarsWithHistory(t *testing.T) {
	// Historical draws only seed the Markov walk; every pillar must still
	// hold the set invariants, and an empty history must be accepted.
	e := newTestEngine(5)
	cfg, err := GetGameConfig("powerball")
	require.NoError(t, err)

	draws := []Draw{
		{Numbers: []int{12, 24, 36, 48, 60}, SpecialBall: 7, DrawDate: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)},
		{Numbers: []int{3, 17, 28, 41, 55}, SpecialBall: 12, DrawDate: time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)},
	}

	for _, history := range [][]Draw{nil, {}, draws} {
		for run := 0; run < 100; run++ {
			results := e.evaluatePillars(cfg, history)
			for _, result := range results {
				assertValidSet(t, cfg, result.Numbers)
			}
		}
	}
}

func TestTopVotedTieBreak(t *testing.T) {
	cfg := &GameConfig{ID: "x", Count: 3, Min: 1, Max: 20}
	votes := map[int]int{7: 2, 3: 2, 15: 2, 11: 2, 1: 1}
	// All of 3, 7, 11, 15 tie at two votes; numeric ascending wins.
	assert.Equal(t, []int{3, 7, 11}, topVoted(votes, cfg))
}
