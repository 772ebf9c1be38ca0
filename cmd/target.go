package cmd

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checkpointer/internal/config"
	"github.com/nibzard/checkpointer/internal/memorybank"
)

// target is the feature and task document a command works on.
type target struct {
	FeatureName string
	FeaturePath string
	TasksPath   string
}

// resolveTarget uses the explicit task document when one is configured and
// falls back to in-progress feature discovery.
func resolveTarget(cfg *config.Config, logger *log.Logger) (*target, error) {
	if cfg.TasksPath != "" {
		dir := filepath.Dir(cfg.TasksPath)
		return &target{
			FeatureName: filepath.Base(dir),
			FeaturePath: dir,
			TasksPath:   cfg.TasksPath,
		}, nil
	}

	feature, err := memorybank.FindInProgressFeature(cfg.FeaturesPath(), cfg.FeatureGlob, cfg.TasksFile)
	if err != nil {
		return nil, err
	}
	if feature.Candidates > 1 {
		logger.Warn("multiple in-progress features, using the first", "feature", feature.Name, "count", feature.Candidates)
	}
	logger.Debug("feature resolved", "path", feature.Path, "tasks", feature.TasksPath)
	return &target{
		FeatureName: feature.Name,
		FeaturePath: feature.Path,
		TasksPath:   feature.TasksPath,
	}, nil
}
