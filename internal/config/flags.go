package config

import (
	"flag"
	"strings"

	"github.com/nibzard/checkpointer/internal/utils"
)

// parseFlags defines and parses the global CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("checkpointer", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.ProjectRoot, "root", cfg.ProjectRoot, "Project root (default: current directory)")
	fs.StringVar(&cfg.FeaturesDir, "features-dir", cfg.FeaturesDir, "In-progress features directory, relative to the project root")
	fs.StringVar(&cfg.FeatureGlob, "feature-glob", cfg.FeatureGlob, "Glob matching feature directory names")
	fs.StringVar(&cfg.TasksFile, "tasks-file", cfg.TasksFile, "Task document name inside a feature directory")
	fs.StringVar(&cfg.TasksPath, "tasks", cfg.TasksPath, "Path to a task document (skips feature discovery)")

	// Scanning
	fs.IntVar(&cfg.TaskWindow, "task-window", cfg.TaskWindow, "Lines after a task header searched for its completion marker")
	glyphs := strings.Join(cfg.CompletionGlyphs, ",")
	fs.StringVar(&glyphs, "completion-glyphs", glyphs, "Comma-separated extra check mark glyphs")

	// Git
	fs.StringVar(&cfg.GitBinary, "git-bin", cfg.GitBinary, "Git binary")

	// Output
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Handoff output format (env, json)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "completion-glyphs" {
			cfg.CompletionGlyphs = utils.SplitAndTrim(glyphs, ",")
		}
	})

	return nil
}
