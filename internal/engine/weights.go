package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrPresetNotFound is returned for unknown weight preset ids.
var ErrPresetNotFound = errors.New("weight preset not found")

// weightSumTolerance is how far from 100 the six percentages may drift.
const weightSumTolerance = 0.1

// AlgorithmWeights is the user-facing 6-category percentage split over
// methodology families. It is a preference surface owned by the caller;
// the pillar evaluators run on their own fixed internal weights and never
// read these values.
type AlgorithmWeights struct {
	Statistical        float64 `json:"statistical"`
	Frequency          float64 `json:"frequency"`
	GapAnalysis        float64 `json:"gap_analysis"`
	PatternRecognition float64 `json:"pattern_recognition"`
	DeepLearning       float64 `json:"deep_learning"`
	CosmicIntelligence float64 `json:"cosmic_intelligence"`
}

// WeightPreset is a named, ready-made weight split.
type WeightPreset struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Weights     AlgorithmWeights `json:"weights"`
}

// WeightValidation is the outcome of checking a weight set.
type WeightValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

var weightCategories = []string{
	"statistical", "frequency", "gap_analysis",
	"pattern_recognition", "deep_learning", "cosmic_intelligence",
}

// DefaultWeights is the balanced starting split.
func DefaultWeights() AlgorithmWeights {
	return AlgorithmWeights{
		Statistical:        25,
		Frequency:          20,
		GapAnalysis:        15,
		PatternRecognition: 15,
		DeepLearning:       15,
		CosmicIntelligence: 10,
	}
}

var weightPresets = []WeightPreset{
	{
		ID:          "balanced",
		Name:        "Balanced",
		Description: "Even coverage across every methodology family.",
		Weights:     DefaultWeights(),
	},
	{
		ID:          "statistical_focus",
		Name:        "Statistical Focus",
		Description: "Leans on classical statistical modeling and frequency counts.",
		Weights: AlgorithmWeights{
			Statistical: 40, Frequency: 25, GapAnalysis: 15,
			PatternRecognition: 10, DeepLearning: 10, CosmicIntelligence: 0,
		},
	},
	{
		ID:          "pattern_hunter",
		Name:        "Pattern Hunter",
		Description: "Prioritizes pattern recognition and gap analysis.",
		Weights: AlgorithmWeights{
			Statistical: 10, Frequency: 15, GapAnalysis: 25,
			PatternRecognition: 30, DeepLearning: 15, CosmicIntelligence: 5,
		},
	},
	{
		ID:          "machine_mind",
		Name:        "Machine Mind",
		Description: "Puts deep learning models in the driver's seat.",
		Weights: AlgorithmWeights{
			Statistical: 15, Frequency: 10, GapAnalysis: 10,
			PatternRecognition: 15, DeepLearning: 45, CosmicIntelligence: 5,
		},
	},
	{
		ID:          "cosmic_seeker",
		Name:        "Cosmic Seeker",
		Description: "Maximum cosmic intelligence influence for intuition-led players.",
		Weights: AlgorithmWeights{
			Statistical: 10, Frequency: 10, GapAnalysis: 10,
			PatternRecognition: 15, DeepLearning: 15, CosmicIntelligence: 40,
		},
	},
}

// ListWeightPresets returns the named presets in a stable order.
func ListWeightPresets() []WeightPreset {
	return append([]WeightPreset(nil), weightPresets...)
}

// GetWeightPreset resolves a preset id.
func GetWeightPreset(id string) (*WeightPreset, error) {
	for i := range weightPresets {
		if weightPresets[i].ID == id {
			preset := weightPresets[i]
			return &preset, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, id)
}

func (w AlgorithmWeights) values() []float64 {
	return []float64{
		w.Statistical, w.Frequency, w.GapAnalysis,
		w.PatternRecognition, w.DeepLearning, w.CosmicIntelligence,
	}
}

// Sum totals the six percentages.
func (w AlgorithmWeights) Sum() float64 {
	total := 0.0
	for _, v := range w.values() {
		total += v
	}
	return total
}

// Validate checks that every weight is a finite number in [0, 100] and
// that the six together sum to 100 within tolerance.
func (w AlgorithmWeights) Validate() WeightValidation {
	var errs []string
	for i, v := range w.values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Sprintf("%s weight must be a finite number", weightCategories[i]))
			continue
		}
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Sprintf("%s weight %.1f is outside [0, 100]", weightCategories[i], v))
		}
	}
	if len(errs) == 0 {
		if sum := w.Sum(); math.Abs(sum-100) > weightSumTolerance {
			errs = append(errs, fmt.Sprintf("weights must sum to 100, got %.1f", sum))
		}
	}
	return WeightValidation{Valid: len(errs) == 0, Errors: errs}
}

// Normalize rescales the weights to integer percentages summing to exactly
// 100, assigning the rounding remainder to the largest weight. Input must
// be six non-negative finite numbers not all zero.
func (w AlgorithmWeights) Normalize() AlgorithmWeights {
	values := w.values()
	total := 0.0
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			values[i] = 0
			continue
		}
		total += v
	}
	if total == 0 {
		return DefaultWeights()
	}

	rounded := make([]float64, len(values))
	sum := 0.0
	largest := 0
	for i, v := range values {
		rounded[i] = math.Floor(v/total*100 + 0.5)
		sum += rounded[i]
		if values[i] > values[largest] {
			largest = i
		}
	}
	rounded[largest] += 100 - sum

	return AlgorithmWeights{
		Statistical:        rounded[0],
		Frequency:          rounded[1],
		GapAnalysis:        rounded[2],
		PatternRecognition: rounded[3],
		DeepLearning:       rounded[4],
		CosmicIntelligence: rounded[5],
	}
}

// CreateCustomWeights validates a caller-supplied split. On failure the
// weights are nil and the errors describe every violation.
func CreateCustomWeights(statistical, frequency, gapAnalysis, patternRecognition, deepLearning, cosmicIntelligence float64) (*AlgorithmWeights, []string) {
	w := AlgorithmWeights{
		Statistical:        statistical,
		Frequency:          frequency,
		GapAnalysis:        gapAnalysis,
		PatternRecognition: patternRecognition,
		DeepLearning:       deepLearning,
		CosmicIntelligence: cosmicIntelligence,
	}
	if result := w.Validate(); !result.Valid {
		return nil, result.Errors
	}
	return &w, nil
}

var categoryLabels = map[string]string{
	"statistical":         "statistical modeling",
	"frequency":           "frequency analysis",
	"gap_analysis":        "gap analysis",
	"pattern_recognition": "pattern recognition",
	"deep_learning":       "deep learning",
	"cosmic_intelligence": "cosmic intelligence",
}

// Describe renders a short prose summary from the dominant one or two
// categories.
func (w AlgorithmWeights) Describe() string {
	type entry struct {
		category string
		value    float64
	}
	entries := make([]entry, len(weightCategories))
	for i, v := range w.values() {
		entries[i] = entry{weightCategories[i], v}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].value > entries[j].value
	})

	lead := entries[0]
	second := entries[1]
	if lead.value-second.value <= 5 {
		return fmt.Sprintf("A blend led by %s and %s, at %.0f%% and %.0f%%.",
			categoryLabels[lead.category], categoryLabels[second.category], lead.value, second.value)
	}
	return fmt.Sprintf("Dominated by %s at %.0f%% of the overall mix.",
		categoryLabels[lead.category], lead.value)
}

// UserWeightPrefs captures the coarse preferences used to recommend a
// preset.
type UserWeightPrefs struct {
	PrefersData      bool `json:"prefers_data"`
	PrefersPatterns  bool `json:"prefers_patterns"`
	PrefersIntuition bool `json:"prefers_intuition"`
}

// RecommendPreset picks the preset best matching the stated preferences,
// falling back to the balanced split.
func RecommendPreset(prefs UserWeightPrefs) WeightPreset {
	switch {
	case prefs.PrefersIntuition:
		return mustPreset("cosmic_seeker")
	case prefs.PrefersPatterns:
		return mustPreset("pattern_hunter")
	case prefs.PrefersData:
		return mustPreset("statistical_focus")
	default:
		return mustPreset("balanced")
	}
}

func mustPreset(id string) WeightPreset {
	preset, err := GetWeightPreset(id)
	if err != nil {
		panic(fmt.Sprintf("missing built-in preset %q", id))
	}
	return *preset
}

// CategoryNames lists the six weight categories in canonical order.
func CategoryNames() []string {
	return append([]string(nil), weightCategories...)
}
