package cmd

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checkpointer/internal/config"
	"github.com/nibzard/checkpointer/internal/ui"
)

func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("checkpointer tui", flag.ContinueOnError)
	interval := fs.Duration("interval", ui.DefaultRefreshInterval, "Refresh interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}

	var path string
	if len(remaining) == 1 {
		path = remaining[0]
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.ProjectRoot, path)
		}
	} else {
		t, err := resolveTarget(cfg, logger)
		if err != nil {
			return err
		}
		path = t.TasksPath
	}

	return ui.RunTUI(ctx, path, scanOptions(cfg), ui.WithRefreshInterval(*interval))
}

