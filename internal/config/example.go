package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# checkpointer configuration file
# Values can be overridden by CHECKPOINTER_* environment variables or CLI flags

# Directory holding in-progress features (relative to project root)
features_dir = "memory-bank/features/2-IN_PROGRESS"

# Glob matching a feature directory name
feature_glob = "FEAT-*"

# Task document inside the feature directory
tasks_file = "feature-tasks.md"

# Lines after a task header (header included) searched for its completion marker
task_window = 5

# Extra check mark glyphs accepted in front of "complete"
# completion_glyphs = ["✔"]

# Git binary
git_binary = "git"

# Handoff output format: env (KEY=VALUE lines) or json
output = "env"

# Logging
log_level = "info"    # debug, info, warn, error
log_format = "text"   # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
