package gitexec

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoHead is returned when HEAD cannot be resolved, e.g. in a repository
// without commits.
var ErrNoHead = errors.New("cannot resolve HEAD")

// Client answers working-tree questions through a Runner.
type Client struct {
	runner Runner
}

// NewClient creates a Client backed by runner.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// Status returns `git status --porcelain` output.
//
// Any failure, including a non-zero exit, yields "", which callers cannot
// tell apart from a clean working tree.
func (c *Client) Status(ctx context.Context) string {
	res, err := c.runner.Run(ctx, "status", "--porcelain")
	if err != nil || res.ExitCode != 0 {
		return ""
	}
	return res.Output
}

// DiffStat returns the staged and unstaged diff summaries. Failures yield
// empty strings.
func (c *Client) DiffStat(ctx context.Context) (staged, unstaged string) {
	if res, err := c.runner.Run(ctx, "diff", "--cached", "--stat"); err == nil {
		staged = res.Output
	}
	if res, err := c.runner.Run(ctx, "diff", "--stat"); err == nil {
		unstaged = res.Output
	}
	return staged, unstaged
}

// Head returns the short hash and subject line of HEAD.
func (c *Client) Head(ctx context.Context) (hash, subject string, err error) {
	res, err := c.runner.Run(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", "", fmt.Errorf("rev-parse HEAD: %w", err)
	}
	if res.ExitCode != 0 || res.Output == "" {
		return "", "", ErrNoHead
	}
	hash = res.Output

	res, err = c.runner.Run(ctx, "log", "-1", "--pretty=%s")
	if err != nil {
		return "", "", fmt.Errorf("log HEAD: %w", err)
	}
	if res.ExitCode != 0 {
		return "", "", fmt.Errorf("%w: git log exited with %d", ErrNoHead, res.ExitCode)
	}
	return hash, strings.TrimSpace(res.Output), nil
}
