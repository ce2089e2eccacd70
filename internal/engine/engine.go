// Package engine implements the ten-pillar number-selection and scoring
// pipeline. Ten cosmetically distinct evaluators each produce a scored
// candidate set from uniform randomness; a weighted vote picks the
// recommended numbers, optional add-on passes perturb them, and the result
// carries a unified score and confidence tier.
//
// The pipeline is pure and side-effect free; persistence belongs to the
// caller. Randomness is drawn from an injected source so tests can seed it.
package engine

import (
	"math/rand"
	"sort"
	"sync"
	"time"
)

const (
	minUnifiedScore = 0.10
	maxUnifiedScore = 0.90

	highConfidenceThreshold   = 0.85
	mediumConfidenceThreshold = 0.75

	addonConfidenceBonus = 0.05
)

// ConfidenceLevel is the discrete tier derived from the unified score.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// TenPillarAnalysis is the aggregate result of one pipeline run.
type TenPillarAnalysis struct {
	Pillars            []PillarResult  `json:"pillars"`
	UnifiedScore       float64         `json:"unified_score"`
	ConfidenceLevel    ConfidenceLevel `json:"confidence_level"`
	RecommendedNumbers []int           `json:"recommended_numbers"`
	SpecialBall        int             `json:"special_ball,omitempty"`
	Explanation        string          `json:"explanation"`
}

// Engine runs the pipeline. Safe for concurrent use; the only shared
// state is the rng, which is guarded.
type Engine struct {
	rng *rand.Rand
	mu  sync.Mutex
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandSource fixes the random source, for deterministic tests.
func WithRandSource(src rand.Source) Option {
	return func(e *Engine) {
		e.rng = rand.New(src)
	}
}

// WithClock fixes the clock used by the lunar-day add-on.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine seeded from the current time.
func New(opts ...Option) *Engine {
	e := &Engine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs the full pipeline for a game: resolve config, evaluate the
// ten pillars, aggregate the weighted vote, apply the free enhancement
// passes and any active paid add-ons, and compose the explanation.
func (e *Engine) Analyze(gameID string, draws []Draw, addons []Addon) (*TenPillarAnalysis, error) {
	cfg, err := GetGameConfig(gameID)
	if err != nil {
		return nil, err
	}
	addons = dedupeAddons(addons)

	pillars := e.evaluatePillars(cfg, draws)
	agg := e.aggregate(cfg, pillars)

	numbers := applyFrequencyPass(agg.RecommendedNumbers, pillars, agg.votes)
	numbers = applyPatternPass(numbers, pillars, agg.votes)
	numbers = e.applyAddons(cfg, numbers, addons)

	return &TenPillarAnalysis{
		Pillars:            pillars,
		UnifiedScore:       agg.UnifiedScore,
		ConfidenceLevel:    ConfidenceFor(agg.UnifiedScore, len(addons)),
		RecommendedNumbers: numbers,
		SpecialBall:        agg.SpecialBall,
		Explanation:        Explain(TopPillars(pillars, 3), addons),
	}, nil
}

// ConfidenceFor maps a unified score plus per-add-on bonuses onto a tier.
// Each active add-on contributes +0.05 toward the thresholds, so the tier
// is monotone non-decreasing in the number of active add-ons.
func ConfidenceFor(unifiedScore float64, activeAddons int) ConfidenceLevel {
	adjusted := unifiedScore + float64(activeAddons)*addonConfidenceBonus
	switch {
	case adjusted >= highConfidenceThreshold:
		return ConfidenceHigh
	case adjusted >= mediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// TopPillars returns the n highest-scoring pillars, best first.
func TopPillars(pillars []PillarResult, n int) []PillarResult {
	top := append([]PillarResult(nil), pillars...)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score > top[j].Score
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}
