// Package memorybank locates features inside a project's memory-bank
// directory tree.
package memorybank

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const (
	bankDir       = "memory-bank"
	featuresDir   = "features"
	inProgressDir = "2-IN_PROGRESS"

	// InProgressFeaturesDir is where in-progress features live, relative to
	// the project root.
	InProgressFeaturesDir = bankDir + "/" + featuresDir + "/" + inProgressDir

	// DefaultFeatureGlob matches a feature directory name.
	DefaultFeatureGlob = "FEAT-*"

	// DefaultTasksFile is the task document inside a feature directory.
	DefaultTasksFile = "feature-tasks.md"
)

var (
	// ErrNoFeaturesDir means the in-progress features directory is missing.
	ErrNoFeaturesDir = errors.New("no IN_PROGRESS features directory found")
	// ErrNoFeature means no feature directory matched.
	ErrNoFeature = errors.New("no IN_PROGRESS feature found")
)

// Feature is an in-progress feature directory.
type Feature struct {
	Name      string
	Path      string
	TasksPath string
	// Candidates is how many directories matched; only the first, in name
	// order, is used.
	Candidates int
}

// FindInProgressFeature returns the first directory in dir whose
// name matches glob.
func FindInProgressFeature(dir, glob, tasksFile string) (*Feature, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoFeaturesDir, dir)
		}
		return nil, fmt.Errorf("stat features dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNoFeaturesDir, dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, fmt.Errorf("match features: %w", err)
	}

	var dirs []string
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && fi.IsDir() {
			dirs = append(dirs, m)
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFeature, dir)
	}
	sort.Strings(dirs)

	if tasksFile == "" {
		tasksFile = DefaultTasksFile
	}
	return &Feature{
		Name:       filepath.Base(dirs[0]),
		Path:       dirs[0],
		TasksPath:  filepath.Join(dirs[0], tasksFile),
		Candidates: len(dirs),
	}, nil
}
