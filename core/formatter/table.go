package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/artpar/reacthub/core/render"
)

// TableFormatter formats output as aligned text tables.
type TableFormatter struct{}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Name returns the formatter name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Description returns the formatter description.
func (f *TableFormatter) Description() string {
	return "Aligned text table output"
}

// FormatBundles writes one row per output file, then one line per warning.
func (f *TableFormatter) FormatBundles(w io.Writer, bundles []render.Bundle, opts FormatOptions) error {
	filtered := filter(bundles, opts)
	if len(filtered) == 0 {
		fmt.Fprintln(w, "No pages found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !opts.NoHeader {
		fmt.Fprintln(tw, strings.Join([]string{"MODULE", "PAGE", "KIND", "TEMPLATE", "PATH"}, "\t"))
	}

	var warnings []render.UnresolvedBinding
	for _, b := range filtered {
		for _, file := range b.Files {
			fmt.Fprintln(tw, strings.Join([]string{
				f.formatValue(b.Module), b.Page, b.Kind, file.Template, file.Path,
			}, "\t"))
		}
		warnings = append(warnings, b.Warnings...)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if len(warnings) > 0 {
		fmt.Fprintf(w, "\n%d unresolved binding(s):\n", len(warnings))
		for _, warn := range warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}

	return nil
}

// FormatError formats an error message.
func (f *TableFormatter) FormatError(w io.Writer, err error) error {
	fmt.Fprintf(w, "Error: %s\n", err.Error())
	return nil
}

// formatValue formats a cell for display.
func (f *TableFormatter) formatValue(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	Register(NewTableFormatter())
}
