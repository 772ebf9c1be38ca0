package config

import (
	"path/filepath"

	"github.com/nibzard/checkpointer/internal/memorybank"
)

// Default values.
const (
	DefaultFeaturesDir = memorybank.InProgressFeaturesDir
	DefaultFeatureGlob = memorybank.DefaultFeatureGlob
	DefaultTasksFile   = memorybank.DefaultTasksFile
	DefaultTaskWindow  = 5
	DefaultGitBinary   = "git"
	DefaultOutput      = OutputEnv
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Handoff output formats.
const (
	OutputEnv  = "env"
	OutputJSON = "json"
)

// Config holds the full configuration for checkpointer.
type Config struct {
	// Feature discovery
	FeaturesDir string `toml:"features_dir" json:"features_dir"`
	FeatureGlob string `toml:"feature_glob" json:"feature_glob"`
	TasksFile   string `toml:"tasks_file" json:"tasks_file"`

	// TasksPath points directly at a task document and skips feature
	// discovery. Flag and environment only.
	TasksPath string `toml:"-" json:"-"`

	// Scanning
	TaskWindow       int      `toml:"task_window" json:"task_window"`
	CompletionGlyphs []string `toml:"completion_glyphs" json:"completion_glyphs,omitempty"`

	// Git
	GitBinary string `toml:"git_binary" json:"git_binary"`

	// Output format of the handoff lines (env or json)
	Output string `toml:"output" json:"output"`

	// Logging configuration
	LogLevel      string `toml:"log_level" json:"log_level"`
	LogFormat     string `toml:"log_format" json:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps" json:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller" json:"log_caller"`

	// Project root (computed, or set with --root)
	ProjectRoot string `toml:"-" json:"-"`
}

// FeaturesPath returns the absolute in-progress features directory.
func (c *Config) FeaturesPath() string {
	if filepath.IsAbs(c.FeaturesDir) {
		return c.FeaturesDir
	}
	return filepath.Join(c.ProjectRoot, c.FeaturesDir)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.FeaturesDir = DefaultFeaturesDir
	cfg.FeatureGlob = DefaultFeatureGlob
	cfg.TasksFile = DefaultTasksFile
	cfg.TaskWindow = DefaultTaskWindow
	cfg.GitBinary = DefaultGitBinary
	cfg.Output = DefaultOutput
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
