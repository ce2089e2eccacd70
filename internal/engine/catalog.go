package engine

import (
	"errors"
	"fmt"
)

// ErrGameNotFound is returned for game ids missing from the catalog.
var ErrGameNotFound = errors.New("game not found")

// SpecialBallConfig describes a game's bonus-ball sub-range.
type SpecialBallConfig struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

// GameConfig is the immutable descriptor for a supported lottery game.
// Configs are defined at package load and never mutated.
type GameConfig struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Count       int                `json:"count"`
	Min         int                `json:"min"`
	Max         int                `json:"max"`
	SpecialBall *SpecialBallConfig `json:"special_ball,omitempty"`
	DrawDays    []string           `json:"draw_days"`
}

// RangeSize returns the number of distinct main-number values.
func (g *GameConfig) RangeSize() int {
	return g.Max - g.Min + 1
}

// Validate rejects configs whose range cannot hold a duplicate-free set,
// which would otherwise leave the candidate generator without a terminating
// draw loop.
func (g *GameConfig) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game config missing id")
	}
	if g.Count <= 0 {
		return fmt.Errorf("game %s: count must be positive, got %d", g.ID, g.Count)
	}
	if g.Min >= g.Max {
		return fmt.Errorf("game %s: invalid range [%d, %d]", g.ID, g.Min, g.Max)
	}
	if g.RangeSize() < g.Count {
		return fmt.Errorf("game %s: range [%d, %d] cannot hold %d distinct numbers", g.ID, g.Min, g.Max, g.Count)
	}
	if sb := g.SpecialBall; sb != nil {
		if sb.Min >= sb.Max || sb.Min < 1 {
			return fmt.Errorf("game %s: invalid special ball range [%d, %d]", g.ID, sb.Min, sb.Max)
		}
	}
	return nil
}

var gameCatalog = mustCatalog([]GameConfig{
	{
		ID:          "powerball",
		Name:        "Powerball",
		Count:       5,
		Min:         1,
		Max:         69,
		SpecialBall: &SpecialBallConfig{Name: "Powerball", Min: 1, Max: 26},
		DrawDays:    []string{"Monday", "Wednesday", "Saturday"},
	},
	{
		ID:          "mega_millions",
		Name:        "Mega Millions",
		Count:       5,
		Min:         1,
		Max:         70,
		SpecialBall: &SpecialBallConfig{Name: "Mega Ball", Min: 1, Max: 25},
		DrawDays:    []string{"Tuesday", "Friday"},
	},
	{
		ID:          "lotto_america",
		Name:        "Lotto America",
		Count:       5,
		Min:         1,
		Max:         52,
		SpecialBall: &SpecialBallConfig{Name: "Star Ball", Min: 1, Max: 10},
		DrawDays:    []string{"Monday", "Wednesday", "Saturday"},
	},
	{
		ID:       "pick_six",
		Name:     "Pick Six",
		Count:    6,
		Min:      1,
		Max:      49,
		DrawDays: []string{"Thursday", "Sunday"},
	},
})

func mustCatalog(configs []GameConfig) map[string]*GameConfig {
	catalog := make(map[string]*GameConfig, len(configs))
	for i := range configs {
		cfg := &configs[i]
		if err := cfg.Validate(); err != nil {
			panic(fmt.Sprintf("invalid game catalog entry: %v", err))
		}
		catalog[cfg.ID] = cfg
	}
	return catalog
}

// GetGameConfig resolves a game id to its static configuration.
func GetGameConfig(gameID string) (*GameConfig, error) {
	cfg, ok := gameCatalog[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGameNotFound, gameID)
	}
	return cfg, nil
}

// ListGameConfigs returns every supported game, in a stable order.
func ListGameConfigs() []*GameConfig {
	ids := []string{"powerball", "mega_millions", "lotto_america", "pick_six"}
	configs := make([]*GameConfig, 0, len(ids))
	for _, id := range ids {
		configs = append(configs, gameCatalog[id])
	}
	return configs
}
