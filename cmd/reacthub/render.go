package main

import (
	"context"
	"fmt"

	"github.com/artpar/reacthub/adapters/fs"
	"github.com/artpar/reacthub/bootstrap"
	"github.com/artpar/reacthub/core/generator"
	"github.com/artpar/reacthub/core/requirement"
	"github.com/spf13/cobra"
)

var (
	renderOut   string
	renderWatch bool
)

var renderCmd = &cobra.Command{
	Use:   "render [path]",
	Short: "Write every generated file without running the toolchain",
	Long: `Render every file a full generate would write into --out (default the
workspace directory) without running npm, npx or git.

With --watch the document is re-rendered each time it changes on disk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
		req, err := loadRequirement(args)
		if err != nil {
			return err
		}

		gen := app.Generator
		if renderOut != "" && !dryRun {
			ws, err := fs.NewDir(renderOut)
			if err != nil {
				return fmt.Errorf("output directory: %w", err)
			}
			gen = app.GeneratorFor(ws)
		}

		if err := renderAll(cmd, gen, req); err != nil {
			return err
		}
		if !renderWatch {
			return nil
		}

		watcher, err := requirement.NewWatcher(requirementPath(args), app.Logger, func(req requirement.Requirement) {
			if err := renderAll(cmd, gen, req); err != nil {
				app.Logger.Error().Err(err).Msg("render failed")
			}
		})
		if err != nil {
			return err
		}
		return watcher.Run(ctx)
	}),
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output directory")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "re-render on requirement changes")
	rootCmd.AddCommand(renderCmd)
}

func renderAll(cmd *cobra.Command, gen *generator.Generator, req requirement.Requirement) error {
	bundles, err := gen.RenderOnly(req)
	if err != nil {
		return err
	}
	files := 0
	for _, b := range bundles {
		files += len(b.Files)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d file(s) from %d bundle(s) into %s\n", files, len(bundles), gen.Workspace().Root())
	return nil
}
