// Package gitexec runs git as a subprocess and answers the few questions the
// checkpoint workflow asks about the working tree.
package gitexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result is the raw outcome of a git invocation.
type Result struct {
	Output   string // trimmed stdout
	ExitCode int
}

// Runner executes git commands.
type Runner interface {
	// Run executes git with args. The error is non-nil only when the process
	// could not be started; a non-zero exit is reported through ExitCode.
	Run(ctx context.Context, args ...string) (Result, error)
}

// ExecRunner runs the real git binary.
type ExecRunner struct {
	Binary string // defaults to "git"
	Dir    string // working directory; empty means the process cwd
}

// NewExecRunner creates an ExecRunner for binary in dir.
func NewExecRunner(binary, dir string) *ExecRunner {
	return &ExecRunner{Binary: binary, Dir: dir}
}

// Run executes git with args. There is no timeout; only ctx cancellation
// stops a hung process.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (Result, error) {
	binary := r.Binary
	if binary == "" {
		binary = "git"
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Output: strings.TrimSpace(stdout.String())}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, fmt.Errorf("%s %s: %w", binary, strings.Join(args, " "), err)
}

// MockRunner implements Runner for tests.
type MockRunner struct {
	// RunFunc is called when Run is invoked. A nil RunFunc returns an empty
	// successful result.
	RunFunc func(args ...string) (Result, error)

	// Calls stores the args of every invocation.
	Calls [][]string
}

// Run records the call and delegates to RunFunc.
func (m *MockRunner) Run(ctx context.Context, args ...string) (Result, error) {
	m.Calls = append(m.Calls, args)
	if m.RunFunc == nil {
		return Result{}, nil
	}
	return m.RunFunc(args...)
}

// Called reports whether a call starting with prefix was recorded.
func (m *MockRunner) Called(prefix ...string) bool {
	for _, call := range m.Calls {
		if len(call) < len(prefix) {
			continue
		}
		match := true
		for i, p := range prefix {
			if call[i] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
