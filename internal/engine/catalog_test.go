package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGameConfigPowerball(t *testing.T) {
	// Catalog resolution is deterministic: same config on every call.
	for i := 0; i < 3; i++ {
		cfg, err := GetGameConfig("powerball")
		require.NoError(t, err)
		assert.Equal(t, "powerball", cfg.ID)
		assert.Equal(t, 5, cfg.Count)
		assert.Equal(t, 1, cfg.Min)
		assert.Equal(t, 69, cfg.Max)
		require.NotNil(t, cfg.SpecialBall)
		assert.Equal(t, 1, cfg.SpecialBall.Min)
		assert.Equal(t, 26, cfg.SpecialBall.Max)
	}
}

func TestGetGameConfigUnknown(t *testing.T) {
	cfg, err := GetGameConfig("bingo")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestListGameConfigs(t *testing.T) {
	configs := ListGameConfigs()
	require.Len(t, configs, 4)
	assert.Equal(t, "powerball", configs[0].ID)

	// pick_six has no bonus ball
	var pickSix *GameConfig
	for _, cfg := range configs {
		if cfg.ID == "pick_six" {
			pickSix = cfg
		}
	}
	require.NotNil(t, pickSix)
	assert.Nil(t, pickSix.SpecialBall)
	assert.Equal(t, 6, pickSix.Count)
}

func TestGameConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     GameConfig
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  GameConfig{ID: "x", Count: 5, Min: 1, Max: 69},
		},
		{
			name:    "range smaller than count",
			cfg:     GameConfig{ID: "x", Count: 10, Min: 1, Max: 5},
			wantErr: true,
		},
		{
			name:    "inverted range",
			cfg:     GameConfig{ID: "x", Count: 3, Min: 10, Max: 5},
			wantErr: true,
		},
		{
			name:    "zero count",
			cfg:     GameConfig{ID: "x", Count: 0, Min: 1, Max: 10},
			wantErr: true,
		},
		{
			name:    "missing id",
			cfg:     GameConfig{Count: 5, Min: 1, Max: 69},
			wantErr: true,
		},
		{
			name:    "bad special ball",
			cfg:     GameConfig{ID: "x", Count: 5, Min: 1, Max: 69, SpecialBall: &SpecialBallConfig{Min: 10, Max: 5}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
