package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checkpointer/internal/config"
	"github.com/nibzard/checkpointer/internal/gitexec"
	"github.com/nibzard/checkpointer/internal/taskdoc"
)

// recordCommand adds a commit entry to a checkpoint and writes the task
// document back.
func recordCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, e *env, args []string) error {
	fs := flag.NewFlagSet("checkpointer record", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	hash := fs.String("commit", "", "Commit hash (default: HEAD)")
	message := fs.String("message", "", "Commit message (required with -commit)")
	line := fs.Int("line", -1, "0-based checkpoint line (default: located checkpoint)")
	tasks := fs.String("tasks", "", "Task document (skips feature discovery)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *tasks != "" {
		cfg.TasksPath = *tasks
		if !filepath.IsAbs(cfg.TasksPath) {
			cfg.TasksPath = filepath.Join(cfg.ProjectRoot, cfg.TasksPath)
		}
	}

	commit, err := resolveCommit(ctx, gitexec.NewClient(e.newRunner(cfg)), *hash, *message)
	if err != nil {
		return err
	}

	t, err := resolveTarget(cfg, logger)
	if err != nil {
		return err
	}
	doc, err := taskdoc.Load(t.TasksPath)
	if err != nil {
		return err
	}

	outline := doc.Scan(scanOptions(cfg))
	var cp *taskdoc.Checkpoint
	if *line >= 0 {
		cp = checkpointAt(outline, *line)
	} else {
		cp, err = outline.Checkpoint()
		if err != nil {
			return fmt.Errorf("locating checkpoint: %w", err)
		}
	}
	if !cp.Complete {
		logger.Warn("checkpoint is still pending", "checkpoint", cp.Label)
	}

	if err := doc.AddCommit(cp.Line, commit); err != nil {
		return err
	}
	if err := doc.Save(); err != nil {
		return fmt.Errorf("writing task document: %w", err)
	}
	logger.Debug("commit recorded", "line", cp.Line, "hash", commit.Hash)

	fmt.Fprintf(e.stdout, "✅ Recorded `%s` in %s checkpoint\n", commit.Hash, cp.Label)
	fmt.Fprintf(e.stdout, "   Tasks file: %s\n", t.TasksPath)
	return nil
}

// resolveCommit uses the given hash and message, or HEAD when no hash is
// given. A message without a hash overrides the HEAD subject.
func resolveCommit(ctx context.Context, client *gitexec.Client, hash, message string) (taskdoc.Commit, error) {
	hash = strings.TrimSpace(hash)
	message = strings.TrimSpace(message)

	if hash == "" {
		headHash, subject, err := client.Head(ctx)
		if err != nil {
			return taskdoc.Commit{}, err
		}
		hash = headHash
		if message == "" {
			message = subject
		}
	} else if message == "" {
		return taskdoc.Commit{}, errors.New("-message is required with -commit")
	}

	if strings.ContainsAny(hash, "` \t\r\n") {
		return taskdoc.Commit{}, fmt.Errorf("invalid commit hash %q", hash)
	}
	if strings.ContainsAny(message, "\r\n") {
		return taskdoc.Commit{}, errors.New("commit message must be a single line")
	}
	return taskdoc.Commit{Hash: hash, Message: message}, nil
}

// checkpointAt returns the scanned checkpoint at line. Lines that are not a
// numbered checkpoint get a generic label and are validated by AddCommit.
func checkpointAt(outline *taskdoc.Outline, line int) *taskdoc.Checkpoint {
	for i := range outline.Checkpoints {
		if outline.Checkpoints[i].Line == line {
			cp := outline.Checkpoints[i]
			return &cp
		}
	}
	return &taskdoc.Checkpoint{Line: line, Label: fmt.Sprintf("line %d", line), Complete: true}
}
