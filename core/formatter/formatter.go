// Package formatter prints render bundles for inspection.
// Formatters register themselves by name (table, json, yaml).
package formatter

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/artpar/reacthub/core/render"
)

// Formatter writes bundles in one output format.
type Formatter interface {
	// Name returns the formatter name (e.g., "table", "json", "yaml").
	Name() string

	// Description returns a human-readable description.
	Description() string

	// FormatBundles writes bundles in document order.
	FormatBundles(w io.Writer, bundles []render.Bundle, opts FormatOptions) error

	// FormatError formats an error.
	FormatError(w io.Writer, err error) error
}

// FormatOptions configures formatting behavior.
type FormatOptions struct {
	// Module limits output to bundles of one module ("" = all).
	Module string

	// NoContext drops template contexts from structured output.
	NoContext bool

	// NoHeader disables the header row for tabular formats.
	NoHeader bool

	// Compact minimizes whitespace (for json).
	Compact bool
}

// filter applies the module filter and strips contexts if asked.
func filter(bundles []render.Bundle, opts FormatOptions) []render.Bundle {
	out := make([]render.Bundle, 0, len(bundles))
	for _, b := range bundles {
		if opts.Module != "" && b.Module != opts.Module {
			continue
		}
		if opts.NoContext {
			files := make([]render.File, len(b.Files))
			for i, f := range b.Files {
				files[i] = render.File{Template: f.Template, Path: f.Path}
			}
			b.Files = files
		}
		out = append(out, b)
	}
	return out
}

// Registry manages registered formatters.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
	defaultFmt string
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
		defaultFmt: "table",
	}
}

// Register adds a formatter to the registry.
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Name()]; exists {
		return fmt.Errorf("formatter %q already registered", f.Name())
	}

	r.formatters[f.Name()] = f
	return nil
}

// Get returns a formatter by name.
func (r *Registry) Get(name string) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[name]
	return f, ok
}

// Default returns the default formatter, or nil if none is registered.
func (r *Registry) Default() Formatter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.formatters[r.defaultFmt]
}

// SetDefault sets the default formatter.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[name]; !exists {
		return fmt.Errorf("formatter %q not registered", name)
	}

	r.defaultFmt = name
	return nil
}

// List returns all registered formatter names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter to the default registry.
func Register(f Formatter) error {
	return DefaultRegistry.Register(f)
}

// Get returns a formatter from the default registry.
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// Default returns the default formatter from the default registry.
func Default() Formatter {
	return DefaultRegistry.Default()
}

// List returns all formatter names from the default registry.
func List() []string {
	return DefaultRegistry.List()
}
