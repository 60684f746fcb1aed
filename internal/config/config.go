package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	FeedAddr   string
	WebhookURL string

	RedisURL    string
	DatabaseURL string

	GameMode    string
	PlayerColor string

	EnginePreset string
	SearchDepth  int

	GhostSearchDepth int
	GhostThinkDepth  int
	GhostLineLength  int

	SessionTTLSec int
	HistoryLimit  int

	MessageDir string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		FeedAddr:         ":8787",
		GameMode:         "human_vs_engine",
		PlayerColor:      "white",
		EnginePreset:     "level3",
		GhostSearchDepth: 4,
		GhostThinkDepth:  2,
		GhostLineLength:  4,
		SessionTTLSec:    3600,
		HistoryLimit:     10,
	}

	if v := strings.TrimSpace(os.Getenv("FEED_ADDR")); v != "" {
		cfg.FeedAddr = v
	}
	cfg.WebhookURL = strings.TrimSpace(os.Getenv("WEBHOOK_URL"))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.MessageDir = strings.TrimSpace(os.Getenv("MESSAGE_DIR"))

	if v := strings.TrimSpace(os.Getenv("GAME_MODE")); v != "" {
		cfg.GameMode = strings.ToLower(v)
	}
	switch cfg.GameMode {
	case "human_vs_engine", "human_vs_human":
	default:
		return nil, fmt.Errorf("GAME_MODE must be human_vs_engine or human_vs_human: %s", cfg.GameMode)
	}

	if v := strings.TrimSpace(os.Getenv("PLAYER_COLOR")); v != "" {
		cfg.PlayerColor = strings.ToLower(v)
	}
	switch cfg.PlayerColor {
	case "white", "black":
	default:
		return nil, fmt.Errorf("PLAYER_COLOR must be white or black: %s", cfg.PlayerColor)
	}

	if v := strings.TrimSpace(os.Getenv("ENGINE_PRESET")); v != "" {
		cfg.EnginePreset = v
	}
	if v := strings.TrimSpace(os.Getenv("SEARCH_DEPTH")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("SEARCH_DEPTH must be a positive integer: %s", v)
		}
		cfg.SearchDepth = n
	}

	if v := strings.TrimSpace(os.Getenv("GHOST_SEARCH_DEPTH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GhostSearchDepth = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("GHOST_THINK_DEPTH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GhostThinkDepth = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("GHOST_LINE_LENGTH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.GhostLineLength = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionTTLSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("HISTORY_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}

	return cfg, nil
}
