package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checkpointer/internal/config"
	"github.com/nibzard/checkpointer/internal/gitexec"
	"github.com/nibzard/checkpointer/internal/memorybank"
	"github.com/nibzard/checkpointer/internal/taskdoc"
)

// handoff is what the calling workflow needs to update the checkpoint after
// committing.
type handoff struct {
	FeaturePath    string `json:"feature_path"`
	CheckpointLine int    `json:"checkpoint_line"`
	PhaseName      string `json:"phase_name"`
	TasksPath      string `json:"tasks_path"`
	Complete       bool   `json:"complete"`
}

func writeHandoff(w io.Writer, format string, h handoff) error {
	if format == config.OutputJSON {
		return json.NewEncoder(w).Encode(h)
	}
	fmt.Fprintf(w, "FEATURE_PATH=%s\n", h.FeaturePath)
	fmt.Fprintf(w, "CHECKPOINT_LINE=%d\n", h.CheckpointLine)
	fmt.Fprintf(w, "PHASE_NAME=%s\n", h.PhaseName)
	return nil
}

// locateCommand reports which checkpoint the next commit belongs to.
func locateCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, e *env, args []string) error {
	fs := flag.NewFlagSet("checkpointer locate", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Status lines move to stderr so stdout stays parseable JSON.
	w := e.stdout
	if cfg.Output == config.OutputJSON {
		w = e.stderr
	}

	t, err := resolveTarget(cfg, logger)
	switch {
	case errors.Is(err, memorybank.ErrNoFeaturesDir):
		fmt.Fprintln(w, "❌ No IN_PROGRESS features directory found")
		return fail(err)
	case errors.Is(err, memorybank.ErrNoFeature):
		fmt.Fprintln(w, "❌ No IN_PROGRESS feature found. Please use standard git commit command.")
		return fail(err)
	case err != nil:
		return err
	}
	fmt.Fprintf(w, "✅ Found feature: %s\n", t.FeatureName)

	client := gitexec.NewClient(e.newRunner(cfg))
	if strings.TrimSpace(client.Status(ctx)) == "" {
		fmt.Fprintln(w, "❌ No uncommitted changes to commit")
		return fail(ErrNoChanges)
	}
	staged, unstaged := client.DiffStat(ctx)
	logger.Debug("working tree", "staged", strings.TrimSpace(staged), "unstaged", strings.TrimSpace(unstaged))

	doc, err := taskdoc.Load(t.TasksPath)
	var cp *taskdoc.Checkpoint
	if err == nil {
		cp, err = doc.Locate(scanOptions(cfg))
	}
	if err != nil {
		fmt.Fprintln(w, "❌ Could not find a valid checkpoint to update")
		var missing *taskdoc.MissingCheckpointError
		switch {
		case errors.Is(err, taskdoc.ErrNoCompletedTask):
			fmt.Fprintln(w, "   No completed tasks found in the current feature")
		case errors.As(err, &missing):
			fmt.Fprintf(w, "   %s has completed tasks but no checkpoint\n", taskdoc.PhaseLabel(missing.Phase))
		case errors.Is(err, taskdoc.ErrDocumentNotFound):
			fmt.Fprintf(w, "   Task document not found: %s\n", t.TasksPath)
		default:
			fmt.Fprintf(w, "   %v\n", err)
		}
		return fail(err)
	}

	if !cp.Complete {
		fmt.Fprintf(w, "⚠️  %s checkpoint is still pending\n", cp.Label)
		fmt.Fprintln(w, "   Will update once checkpoint is marked complete")
	}
	fmt.Fprintf(w, "📍 Current checkpoint: %s\n", cp.Label)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "✅ Ready to create commit and update checkpoint")
	fmt.Fprintf(w, "   Feature: %s\n", t.FeatureName)
	fmt.Fprintf(w, "   Checkpoint: %s\n", cp.Label)
	fmt.Fprintf(w, "   Tasks file: %s\n", t.TasksPath)
	if cfg.Output != config.OutputJSON {
		fmt.Fprintln(w)
	}

	return writeHandoff(e.stdout, cfg.Output, handoff{
		FeaturePath:    t.FeaturePath,
		CheckpointLine: cp.Line,
		PhaseName:      cp.Label,
		TasksPath:      t.TasksPath,
		Complete:       cp.Complete,
	})
}
