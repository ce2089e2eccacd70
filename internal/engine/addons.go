package engine

// Addon identifies one of the optional paid post-processing passes.
type Addon string

const (
	AddonCosmicIntelligence Addon = "cosmic_intelligence"
	AddonClaudeNexus        Addon = "claude_nexus"
	AddonPremiumEnhancement Addon = "premium_enhancement"
)

// ValidAddon reports whether s names a known add-on.
func ValidAddon(s string) bool {
	switch Addon(s) {
	case AddonCosmicIntelligence, AddonClaudeNexus, AddonPremiumEnhancement:
		return true
	}
	return false
}

// hasAddon reports whether the set contains a.
func hasAddon(addons []Addon, a Addon) bool {
	for _, x := range addons {
		if x == a {
			return true
		}
	}
	return false
}

// dedupeAddons collapses repeated entries, keeping first-seen order. Add-ons
// are a set; a repeated entry must not apply twice or stack confidence
// bonuses.
func dedupeAddons(addons []Addon) []Addon {
	seen := make(map[Addon]bool, len(addons))
	out := make([]Addon, 0, len(addons))
	for _, a := range addons {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// applyAddons mutates a copy of the selected numbers through the active
// paid passes, in the fixed order cosmic, claude nexus, premium. Every
// replacement skips on collision with an existing selection, so the
// count/duplicate/range invariants survive all passes.
func (e *Engine) applyAddons(cfg *GameConfig, numbers []int, addons []Addon) []int {
	out := append([]int(nil), numbers...)
	if hasAddon(addons, AddonCosmicIntelligence) {
		out = e.applyCosmicIntelligence(cfg, out)
	}
	if hasAddon(addons, AddonClaudeNexus) {
		out = e.applyClaudeNexus(cfg, out)
	}
	if hasAddon(addons, AddonPremiumEnhancement) {
		out = e.applyPremiumEnhancement(cfg, out)
	}
	return sortNumbers(out)
}

// applyCosmicIntelligence perturbs up to two positions, each with 40%
// probability, shifting the value by the lunar-day influence modulo the
// range width.
func (e *Engine) applyCosmicIntelligence(cfg *GameConfig, numbers []int) []int {
	lunarInfluence := e.now().Day() % 8
	replaced := 0
	for i := range numbers {
		if replaced >= 2 {
			break
		}
		if !e.chance(0.40) {
			continue
		}
		candidate := cfg.Min + mod(numbers[i]+lunarInfluence-cfg.Min, cfg.RangeSize())
		if containsInt(numbers, candidate) {
			continue
		}
		numbers[i] = candidate
		replaced++
	}
	return numbers
}

// applyClaudeNexus pulls values toward the range midpoint, each position
// with 25% probability and a random ±5 jitter.
func (e *Engine) applyClaudeNexus(cfg *GameConfig, numbers []int) []int {
	mid := (cfg.Min + cfg.Max) / 2
	for i := range numbers {
		if !e.chance(0.25) {
			continue
		}
		candidate := clampInt(mid+e.rangeInt(-5, 5), cfg.Min, cfg.Max)
		if containsInt(numbers, candidate) {
			continue
		}
		numbers[i] = candidate
	}
	return numbers
}

// applyPremiumEnhancement resamples positions, each with 20% probability,
// from one of three equal-width sub-ranges weighted 30/40/30.
func (e *Engine) applyPremiumEnhancement(cfg *GameConfig, numbers []int) []int {
	third := cfg.RangeSize() / 3
	if third < 1 {
		third = 1
	}
	for i := range numbers {
		if !e.chance(0.20) {
			continue
		}
		lo, hi := e.premiumBand(cfg, third)
		candidate := e.rangeInt(lo, hi)
		if containsInt(numbers, candidate) {
			continue
		}
		numbers[i] = candidate
	}
	return numbers
}

// premiumBand picks low/mid/high sub-range bounds with 30/40/30 weighting.
func (e *Engine) premiumBand(cfg *GameConfig, third int) (int, int) {
	roll := e.float64In(0, 1)
	switch {
	case roll < 0.30:
		return cfg.Min, clampInt(cfg.Min+third-1, cfg.Min, cfg.Max)
	case roll < 0.70:
		return clampInt(cfg.Min+third, cfg.Min, cfg.Max), clampInt(cfg.Min+2*third-1, cfg.Min, cfg.Max)
	default:
		return clampInt(cfg.Min+2*third, cfg.Min, cfg.Max), cfg.Max
	}
}

// applyFrequencyPass is the free enhancement applied before the paid
// add-ons: when the frequency pillar's picks barely overlap the selection,
// its strongest-voted number replaces the weakest-voted selected number.
func applyFrequencyPass(numbers []int, pillars []PillarResult, votes map[int]float64) []int {
	return swapInPillarPick(numbers, pillarByName(pillars, "Frequency Distribution Analysis"), votes)
}

// applyPatternPass mirrors the frequency pass using the clustering pillar.
func applyPatternPass(numbers []int, pillars []PillarResult, votes map[int]float64) []int {
	return swapInPillarPick(numbers, pillarByName(pillars, "Clustering Algorithms"), votes)
}

func swapInPillarPick(numbers []int, pillar *PillarResult, votes map[int]float64) []int {
	if pillar == nil {
		return numbers
	}
	overlap := 0
	for _, n := range pillar.Numbers {
		if containsInt(numbers, n) {
			overlap++
		}
	}
	if overlap >= 2 {
		return numbers
	}

	// Strongest pillar pick not already selected.
	incoming, found := 0, false
	for _, n := range pillar.Numbers {
		if containsInt(numbers, n) {
			continue
		}
		if !found || votes[n] > votes[incoming] {
			incoming, found = n, true
		}
	}
	if !found {
		return numbers
	}

	// Weakest currently selected number gives up its slot.
	weakest := 0
	for i := 1; i < len(numbers); i++ {
		if votes[numbers[i]] < votes[numbers[weakest]] {
			weakest = i
		}
	}
	out := append([]int(nil), numbers...)
	out[weakest] = incoming
	return sortNumbers(out)
}
