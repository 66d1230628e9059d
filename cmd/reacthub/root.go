package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artpar/reacthub/adapters/fs"
	"github.com/artpar/reacthub/bootstrap"
	"github.com/artpar/reacthub/core/events"
	"github.com/artpar/reacthub/core/requirement"
	"github.com/spf13/cobra"
)

// DefaultRequirementFile is read when a command is given no path.
const DefaultRequirementFile = "requirements.json"

var (
	// Global flags
	cfgFile     string
	workDir     string
	dryRun      bool
	metricsFile string
	progress    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reacthub",
	Short: "Generate React admin apps from a requirement document",
	Long: `ReactHub scaffolds a Vite + React + TypeScript admin application and
compiles a requirement document into its routes, login page and CRUD pages.

Quick start:
  reacthub generate requirements.json   # Full project from a document
  reacthub inspect requirements.json    # Show what would be written

Step by step:
  reacthub create-app my-app            # Vite project with tooling and theme
  reacthub create-routes /users,/posts  # Router, layout and page stubs
  reacthub create-login                 # Login page from the auth module
  reacthub create-crud                  # Listing and detail pages`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default reacthub.yaml if present)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", "", "workspace directory (default current directory)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "log commands and keep files in memory")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write prometheus metrics to this textfile")
	rootCmd.PersistentFlags().BoolVar(&progress, "progress", false, "print step progress to stderr")
}

// runFunc is a command body with the wired application.
type runFunc func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error

// withApp bootstraps the application around fn and cancels its context on
// interrupt. In dry run mode the files that would be written are listed.
func withApp(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		app, err := bootstrap.New(bootstrap.Options{
			ConfigPath:  cfgFile,
			Dir:         workDir,
			DryRun:      dryRun,
			MetricsFile: metricsFile,
			LogOutput:   cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, app.Close())
		}()

		if progress {
			app.Events.Subscribe("step.*", printStep(cmd.ErrOrStderr()))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := fn(ctx, cmd, app, args); err != nil {
			return err
		}

		if mem, ok := app.Workspace.(*fs.Memory); ok && len(mem.Files()) > 0 {
			out := cmd.OutOrStdout()
			files := mem.Files()
			fmt.Fprintf(out, "Dry run: %d file(s) would be written\n", len(files))
			for _, f := range files {
				fmt.Fprintf(out, "  %s\n", f)
			}
		}
		return nil
	}
}

// printStep writes one line per step event.
func printStep(w io.Writer) events.Handler {
	return func(e events.Event) error {
		name := e.Step
		if e.Project != "" {
			name = e.Project + "/" + e.Step
		}
		var err error
		switch e.Name {
		case events.StepStarted:
			_, err = fmt.Fprintf(w, "==> %s\n", name)
		case events.StepFinished:
			_, err = fmt.Fprintf(w, "    %s done in %s\n", name, e.Duration.Round(time.Millisecond))
		case events.StepFailed:
			_, err = fmt.Fprintf(w, "    %s failed after %s: %v\n", name, e.Duration.Round(time.Millisecond), e.Err)
		}
		return err
	}
}

// requirementPath returns the first argument or DefaultRequirementFile.
func requirementPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return DefaultRequirementFile
}

// loadRequirement parses and validates the document named by args.
func loadRequirement(args []string) (requirement.Requirement, error) {
	path := requirementPath(args)
	req, err := requirement.ParseFile(path)
	if err != nil {
		return requirement.Requirement{}, fmt.Errorf("load %s: %w", path, err)
	}
	return req, nil
}
