// Package templates executes render bundles against a template set.
// The built-in set is embedded in the binary; a directory may override
// individual templates by name.
package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"text/template"

	"github.com/artpar/reacthub/core/naming"
)

// Ext is the file extension of template files.
const Ext = ".tmpl"

//go:embed files
var builtin embed.FS

// Embedded returns the built-in template set.
func Embedded() fs.FS {
	sub, err := fs.Sub(builtin, "files")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}

// Helpers returns the functions templates may call.
func Helpers() template.FuncMap {
	return template.FuncMap{
		"properCase": func(s string) string {
			return naming.UpperFirst(s)
		},
		"graphqlQuery": func(v any) string {
			s, _ := v.(string)
			return s
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"camel": naming.CamelCase,
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
		"last": func(i int, n int) bool {
			return i == n-1
		},
	}
}

// Renderer holds one parsed template per file.
type Renderer struct {
	funcs     template.FuncMap
	templates map[string]*template.Template
}

// New parses every template in fsys with the given helper functions.
func New(fsys fs.FS, funcs template.FuncMap) (*Renderer, error) {
	r := &Renderer{
		funcs:     funcs,
		templates: make(map[string]*template.Template),
	}
	if err := r.load(fsys); err != nil {
		return nil, err
	}
	return r, nil
}

// Override parses the templates in fsys, replacing those with equal names.
func (r *Renderer) Override(fsys fs.FS) error {
	return r.load(fsys)
}

func (r *Renderer) load(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, Ext) {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		tmpl, err := template.New(path).Funcs(r.funcs).Option("missingkey=error").Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		r.templates[path] = tmpl
		return nil
	})
}

// Render executes the named template with data.
func (r *Renderer) Render(name string, data map[string]any) ([]byte, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Has reports whether the named template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Names lists the loaded templates in sorted order.
func (r *Renderer) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
