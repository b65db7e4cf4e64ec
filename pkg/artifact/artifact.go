// Package artifact persists arbitrary Go values to disk in a binary format
// (MessagePack) and reads them back.
//
// Errors are logged and returned exactly as produced by the filesystem or the
// encoder, so callers can match on them directly. A failed Save may leave a
// partially written file behind.
package artifact

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Vilsol/slox"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	dirPerm  = 0o750
	filePerm = 0o640
)

// Save encodes value to path, creating missing parent directories and
// overwriting any existing file.
func Save(ctx context.Context, path string, value any) error {
	if err := save(path, value); err != nil {
		slox.Error(ctx, "❌ error saving object", slog.String("path", path), slog.Any("error", err))
		return err
	}

	slox.Info(ctx, "💾 object saved successfully", slog.String("path", path))

	return nil
}

func save(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err //nolint:wrapcheck
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if err := msgpack.NewEncoder(f).Encode(value); err != nil {
		_ = f.Close()
		return err //nolint:wrapcheck
	}

	return f.Close() //nolint:wrapcheck
}

// Load decodes the value stored at path by Save into out, which must be a
// non-nil pointer.
func Load(ctx context.Context, path string, out any) error {
	if err := load(path, out); err != nil {
		slox.Error(ctx, "❌ error loading object", slog.String("path", path), slog.Any("error", err))
		return err
	}

	slox.Info(ctx, "📦 object loaded successfully", slog.String("path", path))

	return nil
}

func load(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer func() { _ = f.Close() }()

	return msgpack.NewDecoder(f).Decode(out) //nolint:wrapcheck
}
