package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/artpar/reacthub/bootstrap"
	"github.com/artpar/reacthub/core/formatter"
	"github.com/spf13/cobra"
)

var (
	inspectFormat string
	inspectOpts   formatter.FormatOptions
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [path]",
	Short: "Show the files a full generate would write",
	Long: `Compile the requirement document (default ` + DefaultRequirementFile + `)
and print every bundle with its files, template contexts and unresolved API
bindings. Nothing is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
		f, ok := formatter.Get(inspectFormat)
		if !ok {
			return fmt.Errorf("unknown format %q (available: %s)", inspectFormat, strings.Join(formatter.List(), ", "))
		}

		req, err := loadRequirement(args)
		if err != nil {
			return err
		}
		bundles, err := app.Generator.Plan(req)
		if err != nil {
			return err
		}
		return f.FormatBundles(cmd.OutOrStdout(), bundles, inspectOpts)
	}),
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "table", "output format ("+strings.Join(formatter.List(), "|")+")")
	inspectCmd.Flags().StringVarP(&inspectOpts.Module, "module", "m", "", "only show bundles of this module")
	inspectCmd.Flags().BoolVar(&inspectOpts.NoContext, "no-context", false, "omit template contexts")
	inspectCmd.Flags().BoolVar(&inspectOpts.NoHeader, "no-header", false, "omit the table header")
	inspectCmd.Flags().BoolVar(&inspectOpts.Compact, "compact", false, "compact json output")
	rootCmd.AddCommand(inspectCmd)
}
