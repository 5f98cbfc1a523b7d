package config

import (
	"log/slog"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TASKBOARD_API_URL", "")
	t.Setenv("TASKBOARD_ENV", "")
	t.Setenv("TASKBOARD_STATE_DIR", "")
	t.Setenv("TASKBOARD_LOG_LEVEL", "")

	cfg := Load()
	if cfg.APIBaseURL != localAPIURL {
		t.Errorf("base url = %q, want %q", cfg.APIBaseURL, localAPIURL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("log level = %v, want info", cfg.LogLevel)
	}
	if !strings.HasSuffix(cfg.StatePath(), "taskboard.db") {
		t.Errorf("state path = %q, want sqlite file", cfg.StatePath())
	}
}

func TestLoad_ProductionEnv(t *testing.T) {
	t.Setenv("TASKBOARD_API_URL", "")
	t.Setenv("TASKBOARD_ENV", "production")

	cfg := Load()
	if cfg.APIBaseURL != deployedAPIURL {
		t.Errorf("base url = %q, want deployed address", cfg.APIBaseURL)
	}
}

func TestLoad_ExplicitOverrides(t *testing.T) {
	t.Setenv("TASKBOARD_API_URL", "http://api.test:9000")
	t.Setenv("TASKBOARD_ENV", "production")
	t.Setenv("TASKBOARD_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.APIBaseURL != "http://api.test:9000" {
		t.Errorf("base url = %q, explicit override should win", cfg.APIBaseURL)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", cfg.LogLevel)
	}
}
