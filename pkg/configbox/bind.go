package configbox

import (
	"sync"
	"sync/atomic"

	"github.com/samber/oops"
)

// Validatable is implemented by config structs that need validation after unmarshalling.
type Validatable interface {
	Validate() error
}

// Bind unmarshals the subtree at path into a new T and validates it when T
// implements Validatable.
func Bind[T any](box *Box, path string) (*T, error) {
	cfg := new(T)
	if err := box.Unmarshal(path, cfg); err != nil {
		return nil, err
	}

	if v, ok := any(cfg).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, oops.
				In("configbox").
				With("path", box.Path()).
				Wrapf(err, "config validation failed at %q", path)
		}
	}

	return cfg, nil
}

// Binding is a thread-safe, cached typed view of a Box subtree that follows
// reloads of the underlying file.
type Binding[T any] struct {
	path     string
	cached   atomic.Pointer[T]
	mu       sync.Mutex
	onChange []func(*T)
}

// Get returns the current value.
func (b *Binding[T]) Get() *T {
	return b.cached.Load()
}

// OnChange registers a callback invoked with the new value after each successful reload.
func (b *Binding[T]) OnChange(fn func(*T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = append(b.onChange, fn)
}

// apply rebinds from box. A box that fails to bind leaves the old value in place.
func (b *Binding[T]) apply(box *Box) error {
	cfg, err := Bind[T](box, b.path)
	if err != nil {
		return err
	}

	b.cached.Store(cfg)

	b.mu.Lock()
	callbacks := make([]func(*T), len(b.onChange))
	copy(callbacks, b.onChange)
	b.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}

	return nil
}
