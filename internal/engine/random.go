package engine

import "sort"

// randomSet draws a duplicate-free set of cfg.Count uniform numbers in
// [cfg.Min, cfg.Max], sorted ascending. The draw loop is bounded; if the
// rng keeps colliding the set is topped up by a deterministic scan, so a
// valid config can never loop forever.
func (e *Engine) randomSet(cfg *GameConfig) []int {
	picked := make(map[int]bool, cfg.Count)
	maxAttempts := cfg.RangeSize() * 4
	for attempts := 0; len(picked) < cfg.Count && attempts < maxAttempts; attempts++ {
		picked[e.rangeInt(cfg.Min, cfg.Max)] = true
	}
	fillDistinct(picked, cfg)
	return sortedSet(picked)
}

// randomSpecial draws the bonus ball, or 0 if the game has none.
func (e *Engine) randomSpecial(cfg *GameConfig) int {
	if cfg.SpecialBall == nil {
		return 0
	}
	return e.rangeInt(cfg.SpecialBall.Min, cfg.SpecialBall.Max)
}

// rangeInt returns a uniform int in [min, max].
func (e *Engine) rangeInt(min, max int) int {
	e.mu.Lock()
	n := e.rng.Intn(max - min + 1)
	e.mu.Unlock()
	return n + min
}

// float64In returns a uniform float in [min, max).
func (e *Engine) float64In(min, max float64) float64 {
	e.mu.Lock()
	f := e.rng.Float64()
	e.mu.Unlock()
	return min + f*(max-min)
}

// chance reports true with probability p.
func (e *Engine) chance(p float64) bool {
	e.mu.Lock()
	f := e.rng.Float64()
	e.mu.Unlock()
	return f < p
}

// clampInt pins v into [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// fillDistinct tops up a partially filled set with the lowest unused
// in-range values until it holds cfg.Count members.
func fillDistinct(picked map[int]bool, cfg *GameConfig) {
	for v := cfg.Min; v <= cfg.Max && len(picked) < cfg.Count; v++ {
		picked[v] = true
	}
}

func sortedSet(picked map[int]bool) []int {
	numbers := make([]int, 0, len(picked))
	for v := range picked {
		numbers = append(numbers, v)
	}
	sort.Ints(numbers)
	return numbers
}

func sortNumbers(numbers []int) []int {
	sort.Ints(numbers)
	return numbers
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
