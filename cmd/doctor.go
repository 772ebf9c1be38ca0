package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checkpointer/internal/config"
	"github.com/nibzard/checkpointer/internal/taskdoc"
)

// doctorCommand checks everything locate and record depend on.
func doctorCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, e *env, args []string) error {
	fs := flag.NewFlagSet("checkpointer doctor", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	w := e.stdout
	fmt.Fprintln(w, "Checkpointer Doctor")
	fmt.Fprintln(w, "===================")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintf(w, "Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Git:")
	fmt.Fprintf(w, "  Binary: %s\n", cfg.GitBinary)
	if resolved, err := exec.LookPath(cfg.GitBinary); err != nil {
		fmt.Fprintf(w, "  ❌ Not found: %v\n", err)
		allOK = false
	} else {
		if *verbose {
			fmt.Fprintf(w, "  ✅ OK (found in PATH: %s)\n", resolved)
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
		res, err := e.newRunner(cfg).Run(ctx, "rev-parse", "--is-inside-work-tree")
		if err != nil || res.ExitCode != 0 || res.Output != "true" {
			fmt.Fprintln(w, "  ❌ Project root is not inside a git work tree")
			allOK = false
		} else {
			fmt.Fprintln(w, "  ✅ Work tree")
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Feature:")
	t, err := resolveTarget(cfg, logger)
	if err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "⚠️  Some checks failed. Checkpointer may not function correctly.")
		return fail(errors.New("doctor checks failed"))
	}
	fmt.Fprintf(w, "  ✅ %s\n", t.FeatureName)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Task document: %s\n", t.TasksPath)
	doc, err := taskdoc.Load(t.TasksPath)
	if err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		allOK = false
	} else {
		outline := doc.Scan(scanOptions(cfg))
		if *verbose {
			phases, tasks, done := outlineCounts(outline)
			fmt.Fprintf(w, "  Phases: %d  Tasks: %d  Completed: %d  Checkpoints: %d\n",
				phases, tasks, done, len(outline.Checkpoints))
		}
		cp, err := outline.Checkpoint()
		switch {
		case err != nil:
			fmt.Fprintf(w, "  ⚠️  %v\n", err)
		case !cp.Complete:
			fmt.Fprintf(w, "  ⚠️  %s checkpoint is still pending (line %d)\n", cp.Label, cp.Line)
		default:
			fmt.Fprintf(w, "  ✅ %s checkpoint (line %d)\n", cp.Label, cp.Line)
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. Checkpointer may not function correctly.")
	return fail(errors.New("doctor checks failed"))
}

func outlineCounts(outline *taskdoc.Outline) (phases, tasks, done int) {
	for _, b := range outline.Blocks {
		switch b.Kind {
		case taskdoc.KindPhase:
			phases++
		case taskdoc.KindTask:
			tasks++
			if b.Complete {
				done++
			}
		}
	}
	return phases, tasks, done
}
