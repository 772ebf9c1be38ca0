// Package config tests configuration loading.
package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// isolate points HOME and the working directory at empty temp dirs so no real
// config file leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{
		"CHECKPOINTER_ROOT", "CHECKPOINTER_FEATURES_DIR", "CHECKPOINTER_FEATURE_GLOB",
		"CHECKPOINTER_TASKS_FILE", "CHECKPOINTER_TASKS", "CHECKPOINTER_TASK_WINDOW",
		"CHECKPOINTER_COMPLETION_GLYPHS", "CHECKPOINTER_GIT_BIN", "CHECKPOINTER_OUTPUT",
		"CHECKPOINTER_LOG_LEVEL", "CHECKPOINTER_LOG_FORMAT",
		"CHECKPOINTER_LOG_TIMESTAMPS", "CHECKPOINTER_LOG_CALLER",
	} {
		t.Setenv(key, "")
	}
	work := t.TempDir()
	chdirForTest(t, work)
	return work
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.FeaturesDir != DefaultFeaturesDir {
		t.Errorf("FeaturesDir: got %q, want %q", cfg.FeaturesDir, DefaultFeaturesDir)
	}
	if cfg.FeatureGlob != "FEAT-*" {
		t.Errorf("FeatureGlob: got %q, want FEAT-*", cfg.FeatureGlob)
	}
	if cfg.TasksFile != "feature-tasks.md" {
		t.Errorf("TasksFile: got %q, want feature-tasks.md", cfg.TasksFile)
	}
	if cfg.TaskWindow != 5 {
		t.Errorf("TaskWindow: got %d, want 5", cfg.TaskWindow)
	}
	if cfg.Output != OutputEnv {
		t.Errorf("Output: got %q, want env", cfg.Output)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CHECKPOINTER_TASK_WINDOW", "8")
	t.Setenv("CHECKPOINTER_FEATURE_GLOB", "FEATURE-*")
	t.Setenv("CHECKPOINTER_COMPLETION_GLYPHS", "✔, ☑")
	t.Setenv("CHECKPOINTER_LOG_TIMESTAMPS", "yes")

	cfg := &Config{}
	setDefaults(cfg)
	loadFromEnv(cfg)

	if cfg.TaskWindow != 8 {
		t.Errorf("TaskWindow: got %d, want 8", cfg.TaskWindow)
	}
	if cfg.FeatureGlob != "FEATURE-*" {
		t.Errorf("FeatureGlob: got %q, want FEATURE-*", cfg.FeatureGlob)
	}
	if !reflect.DeepEqual(cfg.CompletionGlyphs, []string{"✔", "☑"}) {
		t.Errorf("CompletionGlyphs: got %v", cfg.CompletionGlyphs)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: got false, want true")
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "checkpointer.toml")

	content := []byte(`features_dir = "docs/features/active"
task_window = 7
completion_glyphs = ["✔"]
output = "json"
`)
	if err := os.WriteFile(configFile, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	setDefaults(cfg)
	if err := loadConfigFile(cfg, configFile); err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}

	if cfg.FeaturesDir != "docs/features/active" {
		t.Errorf("FeaturesDir: got %q", cfg.FeaturesDir)
	}
	if cfg.TaskWindow != 7 {
		t.Errorf("TaskWindow: got %d, want 7", cfg.TaskWindow)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output: got %q, want json", cfg.Output)
	}
	if cfg.TasksFile != DefaultTasksFile {
		t.Errorf("TasksFile should keep its default, got %q", cfg.TasksFile)
	}
}

func TestLoadConfigFileUnknownKey(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "checkpointer.toml")
	if err := os.WriteFile(configFile, []byte("max_iterations = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	err := loadConfigFile(cfg, configFile)
	if err == nil || !strings.Contains(err.Error(), "max_iterations") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestLoadPriority(t *testing.T) {
	work := isolate(t)

	// Project file beats defaults, env beats project file, flags beat env.
	project := "task_window = 6\nfeature_glob = \"PROJ-*\"\ntasks_file = \"tasks.md\"\n"
	if err := os.WriteFile(filepath.Join(work, "checkpointer.toml"), []byte(project), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHECKPOINTER_FEATURE_GLOB", "ENV-*")
	t.Setenv("CHECKPOINTER_TASKS_FILE", "env-tasks.md")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"--tasks-file", "flag-tasks.md", "locate"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.TaskWindow != 6 {
		t.Errorf("TaskWindow: got %d, want 6 (project file)", cfg.TaskWindow)
	}
	if cfg.FeatureGlob != "ENV-*" {
		t.Errorf("FeatureGlob: got %q, want ENV-* (env)", cfg.FeatureGlob)
	}
	if cfg.TasksFile != "flag-tasks.md" {
		t.Errorf("TasksFile: got %q, want flag-tasks.md (flag)", cfg.TasksFile)
	}
	if got := fs.Args(); len(got) != 1 || got[0] != "locate" {
		t.Errorf("remaining args: got %v, want [locate]", got)
	}

	wantRoot, _ := filepath.EvalSymlinks(work)
	gotRoot, _ := filepath.EvalSymlinks(cfg.ProjectRoot)
	if gotRoot != wantRoot {
		t.Errorf("ProjectRoot: got %q, want %q", gotRoot, wantRoot)
	}
}

func TestLoadUserConfigFile(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".checkpointer")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "checkpointer.toml"), []byte("log_level = \"debug\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
}

func TestLoadTasksPathIsAbsolute(t *testing.T) {
	root := isolate(t)

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), []string{"--root", root, "--tasks", "docs/tasks.md"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(cfg.ProjectRoot, "docs", "tasks.md"); cfg.TasksPath != want {
		t.Errorf("TasksPath: got %q, want %q", cfg.TasksPath, want)
	}
}

func TestLoadCompletionGlyphsFlag(t *testing.T) {
	isolate(t)

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), []string{"--completion-glyphs", "✔,☑"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.CompletionGlyphs, []string{"✔", "☑"}) {
		t.Errorf("CompletionGlyphs: got %v", cfg.CompletionGlyphs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{"task window too small", func(c *Config) { c.TaskWindow = 0 }, "task_window"},
		{"unknown output", func(c *Config) { c.Output = "yaml" }, "output"},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"empty features dir", func(c *Config) { c.FeaturesDir = "" }, "features_dir"},
		{"empty glyph", func(c *Config) { c.CompletionGlyphs = []string{""} }, "completion_glyphs[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q does not mention %q", err, tt.wantPath)
			}
		})
	}
}

func TestLoadRejectsInvalidFlag(t *testing.T) {
	isolate(t)

	_, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), []string{"--output", "xml"})
	if err == nil || !strings.Contains(err.Error(), "output") {
		t.Errorf("expected invalid output error, got %v", err)
	}
}

func TestWriteTOML(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.ProjectRoot = "/should/not/appear"

	var buf bytes.Buffer
	if err := cfg.WriteTOML(&buf); err != nil {
		t.Fatalf("WriteTOML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`features_dir = "memory-bank/features/2-IN_PROGRESS"`, "task_window = 5", `output = "env"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "/should/not/appear") {
		t.Errorf("computed fields must not be encoded:\n%s", out)
	}

	// The encoded file must load back cleanly.
	path := filepath.Join(t.TempDir(), "checkpointer.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	loaded := &Config{}
	if err := loadConfigFile(loaded, path); err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if loaded.TaskWindow != 5 {
		t.Errorf("TaskWindow: got %d, want 5", loaded.TaskWindow)
	}
}

func TestExampleConfigLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpointer.toml")
	if err := os.WriteFile(path, []byte(ExampleConfig()), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &Config{}
	if err := loadConfigFile(cfg, path); err != nil {
		t.Fatalf("example config should load: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("example config should validate: %v", err)
	}
}

func TestFeaturesPath(t *testing.T) {
	cfg := &Config{FeaturesDir: "memory-bank/features", ProjectRoot: "/repo"}
	if got := cfg.FeaturesPath(); got != filepath.Join("/repo", "memory-bank", "features") {
		t.Errorf("FeaturesPath: got %q", got)
	}
	cfg.FeaturesDir = "/abs/features"
	if got := cfg.FeaturesPath(); got != "/abs/features" {
		t.Errorf("FeaturesPath: got %q", got)
	}
}

func TestDefaultsMatchMemoryBankLayout(t *testing.T) {
	cfg := &Config{ProjectRoot: "/repo"}
	setDefaults(cfg)

	want := filepath.Join("/repo", "memory-bank", "features", "2-IN_PROGRESS")
	if got := cfg.FeaturesPath(); got != want {
		t.Errorf("FeaturesPath: got %q, want %q", got, want)
	}
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
