package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/checkpointer/internal/utils"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("CHECKPOINTER_ROOT"); v != "" {
		cfg.ProjectRoot = v
	}
	if v := os.Getenv("CHECKPOINTER_FEATURES_DIR"); v != "" {
		cfg.FeaturesDir = v
	}
	if v := os.Getenv("CHECKPOINTER_FEATURE_GLOB"); v != "" {
		cfg.FeatureGlob = v
	}
	if v := os.Getenv("CHECKPOINTER_TASKS_FILE"); v != "" {
		cfg.TasksFile = v
	}
	if v := os.Getenv("CHECKPOINTER_TASKS"); v != "" {
		cfg.TasksPath = v
	}
	if v := os.Getenv("CHECKPOINTER_TASK_WINDOW"); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			cfg.TaskWindow = i
		}
	}
	if v := os.Getenv("CHECKPOINTER_COMPLETION_GLYPHS"); v != "" {
		cfg.CompletionGlyphs = utils.SplitAndTrim(v, ",")
	}
	if v := os.Getenv("CHECKPOINTER_GIT_BIN"); v != "" {
		cfg.GitBinary = v
	}
	if v := os.Getenv("CHECKPOINTER_OUTPUT"); v != "" {
		cfg.Output = v
	}

	// Logging configuration
	if v := os.Getenv("CHECKPOINTER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CHECKPOINTER_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("CHECKPOINTER_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("CHECKPOINTER_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
