// Package fields merges and prepares drawer field lists.
package fields

import (
	"github.com/artpar/reacthub/core/naming"
	"github.com/artpar/reacthub/core/requirement"
)

// DefaultZodString is used when a field declares no zod schema.
const DefaultZodString = "z.string()"

// Merge concatenates create then update and keeps the first occurrence of
// each name. A field present in both lists keeps its create definition.
func Merge(create, update []requirement.Field) []requirement.Field {
	seen := make(map[string]bool, len(create)+len(update))
	merged := make([]requirement.Field, 0, len(create)+len(update))

	for _, list := range [][]requirement.Field{create, update} {
		for _, f := range list {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			merged = append(merged, f)
		}
	}

	return merged
}

// View is a field as a drawer template consumes it.
type View struct {
	Name           string                `json:"name" yaml:"name"`
	Label          string                `json:"label" yaml:"label"`
	Type           requirement.FieldType `json:"type" yaml:"type"`
	Required       bool                  `json:"required" yaml:"required"`
	Hidden         bool                  `json:"hidden" yaml:"hidden"`
	DefaultValue   any                   `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Placeholder    string                `json:"placeholder" yaml:"placeholder"`
	ZodString      string                `json:"zodString" yaml:"zodString"`
	ValidationType string                `json:"validationType" yaml:"validationType"`
	Options        []string              `json:"options,omitempty" yaml:"options,omitempty"`
}

// Prepare converts fields to drawer views, preserving order.
func Prepare(fields []requirement.Field) []View {
	views := make([]View, 0, len(fields))
	for _, f := range fields {
		label := naming.StartCase(f.Name)

		zod := f.Validation.ZodString
		if zod == "" {
			zod = DefaultZodString
		}

		validationType := "string()"
		if f.Type == requirement.FieldTypeNumber {
			validationType = "number()"
		}

		views = append(views, View{
			Name:           f.Name,
			Label:          label,
			Type:           f.Type,
			Required:       f.Required,
			Hidden:         f.Hidden(),
			DefaultValue:   f.DefaultValue,
			Placeholder:    "Enter " + label,
			ZodString:      zod,
			ValidationType: validationType,
			Options:        f.Options,
		})
	}
	return views
}
