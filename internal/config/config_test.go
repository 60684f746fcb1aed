package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8787", cfg.FeedAddr)
	assert.Equal(t, "human_vs_engine", cfg.GameMode)
	assert.Equal(t, "white", cfg.PlayerColor)
	assert.Equal(t, "level3", cfg.EnginePreset)
	assert.Equal(t, 4, cfg.GhostLineLength)
	assert.Equal(t, 3600, cfg.SessionTTLSec)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FEED_ADDR", ":9000")
	t.Setenv("GAME_MODE", "HUMAN_VS_HUMAN")
	t.Setenv("PLAYER_COLOR", "black")
	t.Setenv("SEARCH_DEPTH", "5")
	t.Setenv("GHOST_LINE_LENGTH", "0")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.FeedAddr)
	assert.Equal(t, "human_vs_human", cfg.GameMode)
	assert.Equal(t, "black", cfg.PlayerColor)
	assert.Equal(t, 5, cfg.SearchDepth)
	assert.Zero(t, cfg.GhostLineLength, "previews can be disabled")
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("GAME_MODE", "tournament")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("GAME_MODE", "human_vs_engine")
	t.Setenv("PLAYER_COLOR", "green")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("PLAYER_COLOR", "white")
	t.Setenv("SEARCH_DEPTH", "zero")
	_, err = Load()
	assert.Error(t, err)
}
