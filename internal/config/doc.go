// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.checkpointer/checkpointer.toml or OS-specific config directory)
// 3. Project config file (checkpointer.toml or .checkpointer.toml in the current directory)
// 4. Environment variables (CHECKPOINTER_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// The merged result is validated against an embedded JSON Schema.
//
// User-level config locations:
// - ~/.checkpointer/checkpointer.toml (preferred)
// - Windows: %APPDATA%\checkpointer\checkpointer.toml
// - macOS: ~/Library/Application Support/checkpointer/checkpointer.toml
// - Linux/BSD: $XDG_CONFIG_HOME/checkpointer/checkpointer.toml or ~/.config/checkpointer/checkpointer.toml
package config
