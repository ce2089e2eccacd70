package engine

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// aggregation is the unified view over all ten pillar outputs.
type aggregation struct {
	UnifiedScore       float64
	RecommendedNumbers []int
	SpecialBall        int
	votes              map[int]float64
}

// aggregate combines the pillar results into one weighted vote.
//
// Every number a pillar proposes earns that pillar's fixed weight as a
// vote; the top cfg.Count numbers by total vote win, ties broken numeric
// ascending, and the winners are returned sorted ascending. The unified
// score is the weighted sum of pillar scores clamped into [0.10, 0.90].
func (e *Engine) aggregate(cfg *GameConfig, pillars []PillarResult) aggregation {
	weighted := 0.0
	scores := make([]float64, 0, len(pillars))
	votes := make(map[int]float64)
	for i, p := range pillars {
		weighted += p.Score * pillarSpecs[i].weight
		scores = append(scores, p.Score)
		for _, n := range p.Numbers {
			votes[n] += pillarSpecs[i].weight
		}
	}

	candidates := make([]int, 0, len(votes))
	for n := range votes {
		candidates = append(candidates, n)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if votes[candidates[i]] != votes[candidates[j]] {
			return votes[candidates[i]] > votes[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > cfg.Count {
		candidates = candidates[:cfg.Count]
	}
	recommended := append([]int(nil), candidates...)
	sort.Ints(recommended)

	return aggregation{
		UnifiedScore:       clampFloat(weighted, minUnifiedScore, maxUnifiedScore),
		RecommendedNumbers: recommended,
		SpecialBall:        e.deriveSpecialBall(cfg, scores),
		votes:              votes,
	}
}

// deriveSpecialBall maps the average pillar score into the bonus-ball
// range with a small random jitter. Returns 0 for games without one.
func (e *Engine) deriveSpecialBall(cfg *GameConfig, scores []float64) int {
	sb := cfg.SpecialBall
	if sb == nil {
		return 0
	}
	mean, err := stats.Mean(scores)
	if err != nil {
		return e.randomSpecial(cfg)
	}
	ball := int(mean*float64(sb.Max)) + e.rangeInt(-2, 2)
	return clampInt(ball, sb.Min, sb.Max)
}

// pillarByName finds a pillar result by its display name; used by the
// free enhancement passes.
func pillarByName(pillars []PillarResult, name string) *PillarResult {
	for i := range pillars {
		if pillars[i].Name == name {
			return &pillars[i]
		}
	}
	return nil
}
