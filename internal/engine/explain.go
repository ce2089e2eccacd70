package engine

import (
	"fmt"
	"strings"
)

var addonSentences = map[Addon]string{
	AddonCosmicIntelligence: "Cosmic intelligence aligned two positions with the current lunar cycle.",
	AddonClaudeNexus:        "Claude Nexus refined the selection toward the statistically dense midrange.",
	AddonPremiumEnhancement: "Premium enhancement rebalanced the spread across low, mid, and high bands.",
}

// Explain composes the result prose: the top-scoring pillar, its two
// runners-up, then one fixed sentence per active add-on.
func Explain(topPillars []PillarResult, addons []Addon) string {
	var parts []string
	switch len(topPillars) {
	case 0:
		parts = append(parts, "Analysis completed across all ten mathematical pillars.")
	case 1:
		parts = append(parts, fmt.Sprintf("%s led this analysis with a %.0f%% score.",
			topPillars[0].Name, topPillars[0].Score*100))
	default:
		runners := make([]string, 0, len(topPillars)-1)
		for _, p := range topPillars[1:] {
			runners = append(runners, p.Name)
		}
		parts = append(parts, fmt.Sprintf("%s led this analysis with a %.0f%% score, supported by %s.",
			topPillars[0].Name, topPillars[0].Score*100, strings.Join(runners, " and ")))
	}

	for _, addon := range []Addon{AddonCosmicIntelligence, AddonClaudeNexus, AddonPremiumEnhancement} {
		if hasAddon(addons, addon) {
			parts = append(parts, addonSentences[addon])
		}
	}

	return strings.Join(parts, " ")
}
