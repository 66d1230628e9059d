package main

import (
	"context"
	"fmt"

	"github.com/artpar/reacthub/bootstrap"
	"github.com/artpar/reacthub/core/requirement"
	"github.com/spf13/cobra"
)

var validateOnly bool

var generateCmd = &cobra.Command{
	Use:     "generate [path]",
	Aliases: []string{"g"},
	Short:   "Generate a full project from a requirement document",
	Long: `Generate a full project from a requirement document (default
` + DefaultRequirementFile + `): the app, its routes, the login page and the
CRUD pages of every feature module.

With --validate the document is only parsed and checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateOnly {
			req, err := loadRequirement(args)
			if err != nil {
				return err
			}
			printSummary(cmd, requirementPath(args), req)
			return nil
		}
		return withApp(func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			req, err := loadRequirement(args)
			if err != nil {
				return err
			}
			return app.Generator.Generate(ctx, req)
		})(cmd, args)
	},
}

func init() {
	generateCmd.Flags().BoolVar(&validateOnly, "validate", false, "only validate the requirement document")
	rootCmd.AddCommand(generateCmd)
}

func printSummary(cmd *cobra.Command, path string, req requirement.Requirement) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Requirement %s is valid\n", path)
	fmt.Fprintf(out, "  app:     %s\n", req.App.Name)

	pages := 0
	for _, mod := range req.Modules {
		pages += len(mod.Pages)
	}
	fmt.Fprintf(out, "  modules: %d\n", len(req.Modules))
	fmt.Fprintf(out, "  pages:   %d\n", pages)
	if mod, ok := req.SharedModule(); ok {
		fmt.Fprintf(out, "  shared:  %s\n", mod.Name)
	}
}
