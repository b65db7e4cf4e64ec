// Package scaffold materializes a fixed directory and file skeleton for a new
// machine-learning project.
package scaffold

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Vilsol/slox"
	"github.com/samber/oops"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// Action describes what happened to a path.
type Action string

const (
	ActionDirCreated  Action = "dir_created"
	ActionFileCreated Action = "file_created"
	ActionFileExists  Action = "file_exists"
)

// Entry is a single step of a scaffold run. Path is relative to the root and
// uses forward slashes.
type Entry struct {
	Path   string
	Action Action
}

// Report lists the steps of a scaffold run in order.
type Report []Entry

// Paths returns the paths that had the given action.
func (r Report) Paths(action Action) []string {
	var paths []string
	for _, entry := range r {
		if entry.Action == action {
			paths = append(paths, entry.Path)
		}
	}
	return paths
}

// Scaffolder creates the skeleton described by its Config.
type Scaffolder struct {
	config Config
}

// NewScaffolder creates a scaffolder for the given configuration.
func NewScaffolder(cfg Config) *Scaffolder {
	return &Scaffolder{config: cfg}
}

// Scaffold creates every directory and file of the skeleton. Files that are
// missing or empty are (re)created empty, files with content are left alone.
// The guidance text is printed once the whole list was processed.
//
// Directories are logged and reported only when this run created them, so a
// second run over an existing tree prints no 📁 lines. Report paths always use
// forward slashes.
//
// Running it again is safe. The first filesystem error aborts the run.
func (s *Scaffolder) Scaffold(ctx context.Context) (Report, error) {
	var report Report

	for _, rel := range s.config.Files {
		dir, _ := filepath.Split(filepath.FromSlash(rel))

		if dir != "" {
			dir = filepath.Clean(dir)
			created, err := s.ensureDir(dir)
			if err != nil {
				return report, err
			}
			if created {
				slox.Info(ctx, "📁 Created directory", slog.String("dir", slashPath(dir)))
				report = append(report, Entry{Path: slashPath(dir), Action: ActionDirCreated})
			}
		}

		action, err := s.ensureFile(rel)
		if err != nil {
			return report, err
		}

		switch action {
		case ActionFileCreated:
			slox.Info(ctx, "📄 Created empty file", slog.String("file", rel))
		default:
			slox.Info(ctx, "✅ File already exists", slog.String("file", rel))
		}

		report = append(report, Entry{Path: slashPath(filepath.FromSlash(rel)), Action: action})
	}

	if s.config.Output != nil {
		if err := printGuidance(s.config.Output); err != nil {
			return report, oops.Wrapf(err, "failed to print guidance")
		}
	}

	return report, nil
}

func slashPath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

func (s *Scaffolder) ensureDir(dir string) (bool, error) {
	full := filepath.Join(s.config.Root, dir)

	info, err := os.Stat(full)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, oops.With("dir", full).Wrapf(err, "failed to stat directory")
	}

	if err := os.MkdirAll(full, dirPerm); err != nil {
		return false, oops.With("dir", full).Wrapf(err, "failed to create directory")
	}

	return true, nil
}

func (s *Scaffolder) ensureFile(rel string) (Action, error) {
	full := filepath.Join(s.config.Root, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	switch {
	case err == nil && info.Size() > 0:
		return ActionFileExists, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return "", oops.With("file", full).Wrapf(err, "failed to stat file")
	}

	if err := os.WriteFile(full, nil, filePerm); err != nil {
		return "", oops.With("file", full).Wrapf(err, "failed to create file")
	}

	return ActionFileCreated, nil
}
