package configbox

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/Vilsol/slox"
	"github.com/fsnotify/fsnotify"
	"github.com/samber/oops"
)

const debounceDelay = 100 * time.Millisecond

// Watch loads path and passes the box to fn, then calls fn again with a freshly
// loaded box every time the file is written. Reloads that fail are logged and
// skipped. Watching stops when ctx is done.
func Watch(ctx context.Context, path string, fn func(*Box)) error {
	box, err := Load(ctx, path)
	if err != nil {
		return err
	}

	fn(box)

	return startWatcher(ctx, path, func(box *Box) error {
		fn(box)
		return nil
	})
}

// WatchBinding binds the subtree at keyPath of the file at path to T and keeps
// the binding current as the file changes. Reloads that fail to load or
// validate keep the previous value.
func WatchBinding[T any](ctx context.Context, path, keyPath string) (*Binding[T], error) {
	box, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}

	binding := &Binding[T]{path: keyPath}
	if err := binding.apply(box); err != nil {
		return nil, err
	}

	if err := startWatcher(ctx, path, binding.apply); err != nil {
		return nil, err
	}

	return binding, nil
}

func startWatcher(ctx context.Context, path string, apply func(*Box) error) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return oops.In("configbox").With("path", path).Wrapf(err, "failed to resolve path")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return oops.In("configbox").Wrapf(err, "failed to create file watcher")
	}

	// Editors often replace the file on save, so the directory is watched instead.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return oops.In("configbox").With("path", path).Wrapf(err, "failed to watch directory")
	}

	w := &fileWatcher{
		path:    absPath,
		watcher: watcher,
		apply:   apply,
	}

	go w.loop(ctx)

	return nil
}

type fileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	apply   func(*Box) error
	mu      sync.Mutex
}

func (w *fileWatcher) reload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	box, err := Load(ctx, w.path)
	if err != nil {
		return
	}

	if err := w.apply(box); err != nil {
		slox.Error(ctx, "❌ failed to apply reloaded configuration", slog.String("path", w.path), slog.Any("error", err))
		return
	}

	slox.Info(ctx, "configuration reloaded", slog.String("path", w.path))
}

func (w *fileWatcher) loop(ctx context.Context) {
	defer func() { _ = w.watcher.Close() }()

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, func() {
					w.reload(ctx)
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slox.Error(ctx, "configuration watcher error", slog.Any("error", err))
		}
	}
}
