// Package configbox reads configuration documents into a Box, a read-only tree
// addressed with dotted paths such as "model.params.learning_rate".
//
// A Box is produced once by Load and never mutated afterwards. Typed access is
// available through Unmarshal, Decode and Bind, which validate the tree against
// a Go struct at load time.
package configbox

import (
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/oops"
)

// Delimiter separates path segments. Keys containing it cannot be addressed
// individually, since loading splits them into nested levels.
const Delimiter = "."

// Box is a parsed configuration document.
type Box struct {
	k    *koanf.Koanf
	path string
}

func newBox(k *koanf.Koanf, path string) *Box {
	return &Box{k: k, path: path}
}

// Path returns the file the box was loaded from.
func (b *Box) Path() string {
	return b.path
}

// Exists reports whether the path is set.
func (b *Box) Exists(path string) bool {
	return b.k.Exists(path)
}

// Get returns the raw value at path, or nil. Nested mappings are returned as
// map[string]any and sequences as []any.
func (b *Box) Get(path string) any {
	return b.k.Get(path)
}

// Keys returns every leaf path in the box.
func (b *Box) Keys() []string {
	return b.k.Keys()
}

// String returns the string value at path, or "".
func (b *Box) String(path string) string {
	return b.k.String(path)
}

// Int returns the int value at path, or 0.
func (b *Box) Int(path string) int {
	return b.k.Int(path)
}

// Int64 returns the int64 value at path, or 0.
func (b *Box) Int64(path string) int64 {
	return b.k.Int64(path)
}

// Float64 returns the float64 value at path, or 0.
func (b *Box) Float64(path string) float64 {
	return b.k.Float64(path)
}

// Bool returns the bool value at path, or false.
func (b *Box) Bool(path string) bool {
	return b.k.Bool(path)
}

// Strings returns the string slice at path, or nil.
func (b *Box) Strings(path string) []string {
	return b.k.Strings(path)
}

// Duration returns the duration at path. Strings like "1m30s" and integer
// nanoseconds are both accepted.
func (b *Box) Duration(path string) time.Duration {
	return b.k.Duration(path)
}

// Sub returns the subtree at path as its own Box, so that
// box.Sub("model").String("name") == box.String("model.name").
// A missing path yields an empty Box.
func (b *Box) Sub(path string) *Box {
	return newBox(b.k.Cut(path), b.path)
}

// Raw returns a deep copy of the whole document as nested maps.
func (b *Box) Raw() map[string]any {
	return b.k.Raw()
}

// Unmarshal decodes the subtree at path (the whole box when path is "")
// into out using `koanf` struct tags.
func (b *Box) Unmarshal(path string, out any) error {
	if err := b.k.Unmarshal(path, out); err != nil {
		return oops.
			In("configbox").
			With("path", b.path).
			Wrapf(err, "failed to unmarshal %q", path)
	}
	return nil
}

// Decode decodes the subtree at path into out using `yaml` struct tags, so
// structs shared with yaml.v3 can be reused. Input is weakly typed and duration
// strings are converted to time.Duration.
func (b *Box) Decode(path string, out any) error {
	var input any = b.k.Raw()
	if path != "" {
		input = b.k.Get(path)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return oops.In("configbox").Wrapf(err, "failed to create decoder")
	}

	if err := decoder.Decode(input); err != nil {
		return oops.
			In("configbox").
			With("path", b.path).
			Wrapf(err, "failed to decode %q", path)
	}

	return nil
}
