package requirement

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/artpar/reacthub/core/color"
	"github.com/artpar/reacthub/core/naming"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedExtension is returned for requirement files that are neither JSON nor YAML.
var ErrUnsupportedExtension = errors.New("extension not supported")

// Format is the encoding of a requirement document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath returns the format implied by the file extension.
func FormatForPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%q %w (supports: .json, .yaml, .yml)", ext, ErrUnsupportedExtension)
	}
}

// ParseFile reads and parses a requirement file.
func ParseFile(path string) (Requirement, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Requirement{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Requirement{}, fmt.Errorf("read file %s: %w", path, err)
	}

	return Parse(data, format)
}

// Parse decodes, normalizes and validates a requirement document.
func Parse(data []byte, format Format) (Requirement, error) {
	var req Requirement

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&req); err != nil {
			return Requirement{}, fmt.Errorf("parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &req); err != nil {
			return Requirement{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return Requirement{}, fmt.Errorf("unknown format %q", format)
	}

	req = normalize(req)

	if err := Validate(req); err != nil {
		return Requirement{}, fmt.Errorf("validate requirement %q: %w", req.App.Name, err)
	}

	return req, nil
}

// normalize flags the first feature module as SharedComponents when the
// document flags none. The flag is explicit from here on.
func normalize(req Requirement) Requirement {
	if _, ok := req.SharedModule(); ok {
		return req
	}

	modules := make([]Module, len(req.Modules))
	copy(modules, req.Modules)
	for i := range modules {
		if !modules[i].IsAuth() {
			modules[i].SharedComponents = true
			break
		}
	}
	req.Modules = modules
	return req
}

// Validate checks structural invariants of a requirement.
func Validate(req Requirement) error {
	var errs []string

	if req.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	for _, c := range []struct{ name, hex string }{
		{"app.branding.primaryColor", req.App.Branding.PrimaryColor},
		{"app.branding.secondaryColor", req.App.Branding.SecondaryColor},
	} {
		if c.hex == "" {
			continue
		}
		if _, err := color.HexToThemeToken(c.hex); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", c.name, err))
		}
	}

	seen := make(map[string]bool)
	shared := 0
	for i, mod := range req.Modules {
		if mod.Name == "" {
			errs = append(errs, fmt.Sprintf("modules[%d].name is required", i))
		} else if seen[mod.Name] {
			errs = append(errs, fmt.Sprintf("module name %q is not unique", mod.Name))
		}
		seen[mod.Name] = true

		if mod.SharedComponents {
			shared++
		}

		for _, page := range mod.Pages {
			errs = append(errs, validatePage(mod, page)...)
		}
	}

	if shared > 1 {
		errs = append(errs, fmt.Sprintf("%d modules set sharedComponents, at most one may", shared))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func validatePage(mod Module, page Page) []string {
	var errs []string
	meta := page.Meta()
	where := fmt.Sprintf("module %q page %q", mod.Name, meta.Name)

	switch p := page.(type) {
	case ListingPage:
		errs = append(errs, validateCollection(mod, where, meta, p.Collection)...)
	case DetailPage:
		errs = append(errs, validateCollection(mod, where, meta, p.Collection)...)
	case AuthPage:
		if !mod.IsAuth() {
			errs = append(errs, fmt.Sprintf("%s: auth page outside the %q module", where, AuthModuleName))
		}
		if meta.Route != "" {
			if _, err := naming.BaseSegment(meta.Route); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", where, err))
			}
		}
		for _, a := range p.API {
			if a.Type != "" && a.Type != APILogin && a.Type != APICurrentUser {
				errs = append(errs, fmt.Sprintf("%s: api type %q not valid for auth pages", where, a.Type))
			}
		}
		errs = append(errs, validateFields(where, p.Fields)...)
	}

	return errs
}

func validateCollection(mod Module, where string, meta PageMeta, c Collection) []string {
	var errs []string

	if mod.IsAuth() {
		errs = append(errs, fmt.Sprintf("%s: listing and detail pages cannot live in the %q module", where, AuthModuleName))
	}

	if _, err := naming.BaseSegment(meta.Route); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", where, err))
	}

	for _, a := range c.Actions {
		switch a {
		case ActionCreate, ActionEdit, ActionDelete:
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown action %q", where, a))
		}
	}

	for _, a := range c.API {
		switch a.Type {
		case "", APIList, APICreate, APIUpdate, APIDelete, APIGetByID:
		default:
			errs = append(errs, fmt.Sprintf("%s: api type %q not valid for listing pages", where, a.Type))
		}
	}

	for i, col := range c.Columns {
		if col.Field == "" {
			errs = append(errs, fmt.Sprintf("%s: columns[%d].field is required", where, i))
		}
	}

	errs = append(errs, validateFields(where+" drawerCreate", c.DrawerCreate.Fields)...)
	errs = append(errs, validateFields(where+" drawerUpdate", c.DrawerUpdate.Fields)...)

	return errs
}

func validateFields(where string, fields []Field) []string {
	var errs []string
	for i, f := range fields {
		if f.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: fields[%d].name is required", where, i))
		}
		if !isValidFieldType(f.Type) {
			errs = append(errs, fmt.Sprintf("%s: field %q: unknown type %q", where, f.Name, f.Type))
		}
	}
	return errs
}
