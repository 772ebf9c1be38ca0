// Package cmd implements the CLI command structure for checkpointer.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/checkpointer/internal/config"
	"github.com/nibzard/checkpointer/internal/gitexec"
	"github.com/nibzard/checkpointer/internal/logging"
	"github.com/nibzard/checkpointer/internal/taskdoc"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrNoChanges means the working tree has nothing to commit.
var ErrNoChanges = errors.New("no uncommitted changes to commit")

// ExitError carries the process exit code for a failure whose explanation
// has already been printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func fail(err error) error {
	return &ExitError{Code: 1, Err: err}
}

// env is the process environment a command runs against.
type env struct {
	stdout io.Writer
	stderr io.Writer
	// newRunner builds the git runner for the project root.
	newRunner func(cfg *config.Config) gitexec.Runner
}

func defaultEnv() *env {
	return &env{
		stdout: os.Stdout,
		stderr: os.Stderr,
		newRunner: func(cfg *config.Config) gitexec.Runner {
			return gitexec.NewExecRunner(cfg.GitBinary, cfg.ProjectRoot)
		},
	}
}

// Run executes the checkpointer CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, defaultEnv())
}

func run(ctx context.Context, args []string, e *env) error {
	fs := flag.NewFlagSet("checkpointer", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		printUsage(fs, e.stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, e.stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(e)
	}

	logger := logging.NewFromConfig(e.stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	// If no args or first arg is a flag, use "locate" as default
	subcommand := "locate"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "locate":
		return locateCommand(ctx, cfg, logger, e, remainingArgs)
	case "record":
		return recordCommand(ctx, cfg, logger, e, remainingArgs)
	case "doctor":
		return doctorCommand(ctx, cfg, logger, e, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, logger, remainingArgs)
	case "config":
		return configCommand(cfg, e, remainingArgs)
	case "version":
		return versionCommand(e)
	case "help":
		printUsage(fs, e.stdout)
		return nil
	default:
		fmt.Fprintf(e.stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, e.stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// scanOptions builds the document scan options from the config.
func scanOptions(cfg *config.Config) taskdoc.Options {
	return taskdoc.Options{
		Matcher:    taskdoc.NewMatcher(cfg.CompletionGlyphs...),
		TaskWindow: cfg.TaskWindow,
	}
}

func configCommand(cfg *config.Config, e *env, args []string) error {
	fs := flag.NewFlagSet("checkpointer config", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	example := fs.Bool("example", false, "Print a commented example config instead")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *example {
		fmt.Fprint(e.stdout, config.ExampleConfig())
		return nil
	}
	return cfg.WriteTOML(e.stdout)
}

func versionCommand(e *env) error {
	fmt.Fprintf(e.stdout, "checkpointer version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Checkpointer - record git commits in feature task checkpoints")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  checkpointer [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  locate        Find the checkpoint for the last completed task (default command)")
	fmt.Fprintln(w, "  record        Add a commit entry to a checkpoint")
	fmt.Fprintln(w, "  doctor        Check git, feature directory and task document")
	fmt.Fprintln(w, "  tui           Launch terminal outline viewer")
	fmt.Fprintln(w, "  config        Print the effective configuration as TOML")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Record Options (use with 'record' command):")
	fmt.Fprintln(w, "  -commit string")
	fmt.Fprintln(w, "        Commit hash (default: HEAD)")
	fmt.Fprintln(w, "  -message string")
	fmt.Fprintln(w, "        Commit message (required with -commit)")
	fmt.Fprintln(w, "  -line int")
	fmt.Fprintln(w, "        0-based checkpoint line (default: located checkpoint)")
	fmt.Fprintln(w, "  -tasks string")
	fmt.Fprintln(w, "        Task document (skips feature discovery)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print a commented example config")
}
