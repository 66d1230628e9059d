// Package bootstrap wires configuration, logging, adapters and the generator
// for one CLI invocation.
package bootstrap

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/artpar/reacthub/adapters/clock"
	"github.com/artpar/reacthub/adapters/exec"
	"github.com/artpar/reacthub/adapters/fs"
	"github.com/artpar/reacthub/adapters/idgen"
	"github.com/artpar/reacthub/adapters/metrics"
	"github.com/artpar/reacthub/config"
	"github.com/artpar/reacthub/core/events"
	"github.com/artpar/reacthub/core/generator"
	"github.com/artpar/reacthub/core/render"
	"github.com/artpar/reacthub/core/templates"
	"github.com/artpar/reacthub/ports"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Options are the per-invocation settings the CLI passes in.
type Options struct {
	// ConfigPath is an explicit config file. Empty looks for
	// config.DefaultFile and falls back to the environment.
	ConfigPath string

	// Dir is the workspace root. Empty means the working directory.
	Dir string

	// DryRun logs commands instead of running them and keeps written files
	// in memory.
	DryRun bool

	// MetricsFile overrides metrics.textfile from config.
	MetricsFile string

	// LogOutput receives log lines. Nil means stderr.
	LogOutput io.Writer

	// IDs generates the run id. Nil means idgen.Short.
	IDs ports.IDGenerator
}

// App holds the wired dependencies of one invocation.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	RunID     string
	Metrics   *metrics.Collector
	Renderer  *templates.Renderer
	Workspace ports.Workspace
	Runner    ports.CommandRunner
	Clock     ports.Clock
	Events    *events.Bus
	Generator *generator.Generator

	metricsFile string
	started     time.Time
}

// New loads configuration and wires the application.
func New(opts Options) (*App, error) {
	cfg, err := config.LoadWithFallback(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}

	ids := opts.IDs
	if ids == nil {
		ids = idgen.Short{}
	}
	runID := ids.New()
	logger := NewLogger(cfg.Logging, out).With().Str("run_id", runID).Logger()

	renderer, err := NewRenderer(cfg.Templates)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:      cfg,
		Logger:      logger,
		RunID:       runID,
		Metrics:     metrics.New(),
		Renderer:    renderer,
		Clock:       clock.Real{},
		Events:      events.NewBus(logger),
		metricsFile: cfg.Metrics.Textfile,
	}
	a.started = a.Clock.Now()
	if opts.MetricsFile != "" {
		a.metricsFile = opts.MetricsFile
	}

	if opts.DryRun {
		a.Workspace = fs.NewMemory()
		a.Runner = exec.NewDryRunner(logger)
		logger.Info().Msg("dry run: commands are logged and files kept in memory")
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		ws, err := fs.NewDir(dir)
		if err != nil {
			return nil, fmt.Errorf("workspace: %w", err)
		}
		runner := exec.NewRealRunner(ws.Root())
		runner.Output = out
		if term.IsTerminal(int(os.Stdin.Fd())) {
			runner.Input = os.Stdin
		}
		a.Workspace, a.Runner = ws, runner
	}

	a.Generator = a.GeneratorFor(a.Workspace)
	logger.Debug().Str("root", a.Workspace.Root()).Msg("initialized")
	return a, nil
}

// GeneratorFor returns a generator writing into ws with the app's runner,
// renderer and settings.
func (a *App) GeneratorFor(ws ports.Workspace) *generator.Generator {
	opts := GeneratorOptions(a.Config)
	opts.Events = a.Events
	return generator.New(ws, a.Runner, a.Renderer, a.Metrics, a.Clock, a.Logger, opts)
}

// Close exports metrics when a textfile is configured.
func (a *App) Close() error {
	a.Logger.Debug().Dur("elapsed", a.Clock.Now().Sub(a.started)).Msg("run finished")
	if a.metricsFile == "" {
		return nil
	}
	if err := a.Metrics.WriteTextfile(a.metricsFile, a.Clock.Now()); err != nil {
		return err
	}
	a.Logger.Debug().Str("path", a.metricsFile).Msg("metrics written")
	return nil
}

// GeneratorOptions maps configuration onto generator options.
func GeneratorOptions(cfg *config.Config) generator.Options {
	palette := render.DefaultPalette
	if cfg.Defaults.PrimaryColor != "" {
		palette.Primary = cfg.Defaults.PrimaryColor
	}
	if cfg.Defaults.SecondaryColor != "" {
		palette.Secondary = cfg.Defaults.SecondaryColor
	}

	return generator.Options{
		Toolchain: generator.Toolchain{
			NPM:         cfg.Toolchain.NPM,
			NPX:         cfg.Toolchain.NPX,
			Git:         cfg.Toolchain.Git,
			SkipInstall: cfg.Toolchain.SkipInstall,
		},
		Palette:     palette,
		APIEndpoint: cfg.Defaults.APIEndpoint,
	}
}

// NewRenderer loads the built-in templates and applies the override
// directory, if any.
func NewRenderer(cfg config.TemplatesConfig) (*templates.Renderer, error) {
	r, err := templates.New(templates.Embedded(), templates.Helpers())
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	if cfg.Dir != "" {
		if err := r.Override(os.DirFS(cfg.Dir)); err != nil {
			return nil, fmt.Errorf("load templates from %s: %w", cfg.Dir, err)
		}
	}
	return r, nil
}

// NewLogger builds a logger from config. Format auto picks console output
// when w is a terminal.
func NewLogger(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	format := cfg.Format
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = "console"
		}
	}

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
