// Package config resolves client configuration from environment variables.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	localAPIURL    = "http://localhost:7000"
	deployedAPIURL = "https://kanban-app-tx81.onrender.com"
)

// Config holds client level configuration loaded from environment variables.
type Config struct {
	APIBaseURL string
	StateDir   string
	LogLevel   slog.Level
}

// Load builds Config from environment with sensible defaults. The API base
// switches between the local development address and the deployed address
// unless overridden explicitly.
func Load() *Config {
	return &Config{
		APIBaseURL: getEnv("TASKBOARD_API_URL", defaultAPIURL()),
		StateDir:   getEnv("TASKBOARD_STATE_DIR", defaultStateDir()),
		LogLevel:   parseLevel(os.Getenv("TASKBOARD_LOG_LEVEL")),
	}
}

// StatePath returns the path of the sqlite state file under the state dir.
func (c *Config) StatePath() string {
	return filepath.Join(c.StateDir, "taskboard.db")
}

func defaultAPIURL() string {
	if strings.EqualFold(os.Getenv("TASKBOARD_ENV"), "production") {
		return deployedAPIURL
	}
	return localAPIURL
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskboard"
	}
	return filepath.Join(home, ".taskboard")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
