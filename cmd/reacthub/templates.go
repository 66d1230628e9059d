package main

import (
	"context"
	"fmt"

	"github.com/artpar/reacthub/bootstrap"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the templates available to the generator",
	Long: `List every template the generator can render: the built-in set plus any
templates from the templates.dir override. An override file replaces the
built-in template with the same name.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
		for _, name := range app.Renderer.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
