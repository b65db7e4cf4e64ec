package configbox

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vilsol/mlbox/pkg/config"
	"github.com/Vilsol/slox"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

var errRootNotMapping = errors.New("document root must be a mapping")

// rawBytes serves an already read document to koanf.
type rawBytes []byte

func (r rawBytes) ReadBytes() ([]byte, error) {
	return r, nil
}

func (r rawBytes) Read() (map[string]any, error) {
	return nil, errors.New("raw bytes provider does not support Read")
}

// Load reads the document at path into a Box. The format is picked from the
// file extension: .json and .toml are parsed as such, anything else as YAML.
//
// Failures are logged and reported as ErrNotFound, ErrEmptyDocument or
// ErrParse (test with errors.Is).
func Load(ctx context.Context, path string) (*Box, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slox.Error(ctx, "❌ configuration file not found", slog.String("path", path))
			return nil, notFoundError(path, err)
		}

		slox.Error(ctx, "❌ failed to stat configuration file", slog.String("path", path), slog.Any("error", err))
		return nil, oops.In("configbox").With("path", path).Wrapf(err, "failed to stat %s", path)
	}

	data, err := file.Provider(path).ReadBytes()
	if err != nil {
		slox.Error(ctx, "❌ failed to read configuration file", slog.String("path", path), slog.Any("error", err))
		return nil, oops.In("configbox").With("path", path).Wrapf(err, "failed to read %s", path)
	}

	box, err := parse(path, data)
	if err != nil {
		if errors.Is(err, ErrEmptyDocument) {
			slox.Error(ctx, "⚠️ configuration file is empty", slog.String("path", path))
		} else {
			slox.Error(ctx, "⚠️ error parsing configuration file", slog.String("path", path), slog.Any("error", err))
		}
		return nil, err
	}

	slox.Info(ctx, "✅ configuration loaded successfully", slog.String("path", path))

	return box, nil
}

func parse(path string, data []byte) (*Box, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var err error
	switch ext {
	case ".json", ".toml":
		err = checkPlain(data)
	default:
		err = checkYAML(data)
	}

	switch {
	case errors.Is(err, ErrEmptyDocument):
		return nil, emptyDocumentError(path)
	case err != nil:
		return nil, parseError(path, err)
	}

	k := koanf.New(Delimiter)
	if err := k.Load(rawBytes(data), config.ParserFor(ext)); err != nil {
		return nil, parseError(path, err)
	}

	return newBox(k, path), nil
}

// checkYAML rejects documents that are malformed, empty, explicitly null
// or not rooted in a mapping.
func checkYAML(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyDocument
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err //nolint:wrapcheck
	}

	if len(doc.Content) == 0 {
		return ErrEmptyDocument
	}

	root := doc.Content[0]
	switch {
	case root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null":
		return ErrEmptyDocument
	case root.Kind != yaml.MappingNode:
		return errRootNotMapping
	}

	return nil
}

func checkPlain(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ErrEmptyDocument
	}
	return nil
}
