// Package generator drives the toolchain and writes rendered bundles into a
// project workspace.
//
// Render builders in core/render decide what goes where; the generator
// executes templates, writes the results, runs npm, npx and git at the
// checkpoints a new project needs, and reports what it did through logs and
// metrics.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/artpar/reacthub/core/events"
	"github.com/artpar/reacthub/core/render"
	"github.com/artpar/reacthub/core/templates"
	"github.com/artpar/reacthub/ports"
	"github.com/rs/zerolog"
)

// ErrCommandFailed is returned when a required toolchain command exits
// non-zero.
var ErrCommandFailed = errors.New("command failed")

// Toolchain names the binaries the generator runs.
type Toolchain struct {
	NPM string
	NPX string
	Git string

	// SkipInstall skips npm install of dependency sets.
	SkipInstall bool
}

// DefaultToolchain uses the binaries on PATH.
var DefaultToolchain = Toolchain{NPM: "npm", NPX: "npx", Git: "git"}

// Options configures a Generator.
type Options struct {
	Toolchain   Toolchain
	Palette     render.Palette
	APIEndpoint string // used when the requirement declares none

	// Events receives progress events (nil = none).
	Events *events.Bus
}

// Generator writes a project. It is not safe for concurrent use.
type Generator struct {
	ws       ports.Workspace
	dir      string
	runner   ports.CommandRunner
	renderer *templates.Renderer
	metrics  ports.Metrics
	clock    ports.Clock
	logger   zerolog.Logger
	opts     Options
}

// New creates a generator writing into ws. Commands run in ws's root.
func New(ws ports.Workspace, runner ports.CommandRunner, renderer *templates.Renderer, metrics ports.Metrics, clock ports.Clock, logger zerolog.Logger, opts Options) *Generator {
	if opts.Toolchain == (Toolchain{}) {
		opts.Toolchain = DefaultToolchain
	}
	if opts.Palette == (render.Palette{}) {
		opts.Palette = render.DefaultPalette
	}
	return &Generator{
		ws:       ws,
		runner:   runner,
		renderer: renderer,
		metrics:  metrics,
		clock:    clock,
		logger:   logger,
		opts:     opts,
	}
}

// In returns a generator for the project directory dir below this one.
func (g *Generator) In(dir string) *Generator {
	sub := *g
	sub.ws = g.ws.Sub(dir)
	sub.dir = path.Join(g.dir, dir)
	sub.logger = g.logger.With().Str("project", dir).Logger()
	return &sub
}

// Workspace returns the workspace the generator writes to.
func (g *Generator) Workspace() ports.Workspace {
	return g.ws
}

// step times fn and records it.
func (g *Generator) step(name string, fn func() error) error {
	start := g.clock.Now()
	g.logger.Info().Str("step", name).Msg("step started")
	g.publish(events.Event{Name: events.StepStarted, Step: name})

	err := fn()

	d := g.clock.Now().Sub(start)
	g.metrics.StepCompleted(name, d)
	if err != nil {
		g.logger.Error().Err(err).Str("step", name).Dur("duration", d).Msg("step failed")
		g.publish(events.Event{Name: events.StepFailed, Step: name, Duration: d, Err: err})
		return fmt.Errorf("%s: %w", name, err)
	}
	g.logger.Info().Str("step", name).Dur("duration", d).Msg("step completed")
	g.publish(events.Event{Name: events.StepFinished, Step: name, Duration: d})
	return nil
}

func (g *Generator) publish(e events.Event) {
	e.Project = g.dir
	g.opts.Events.Publish(e)
}

// run executes a command and fails on a non-zero exit.
func (g *Generator) run(ctx context.Context, name string, args ...string) error {
	res, err := g.exec(ctx, name, args...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%w: %s exited %d: %s", ErrCommandFailed,
			ports.Command{Name: name, Args: args}, res.ExitCode, lastLine(res.Stderr))
	}
	return nil
}

// exec executes a command and returns its result whatever the exit code.
func (g *Generator) exec(ctx context.Context, name string, args ...string) (ports.CmdResult, error) {
	cmd := ports.Command{Name: name, Args: args, Dir: g.dir}
	g.logger.Debug().Str("cmd", cmd.String()).Str("dir", cmd.Dir).Msg("running command")

	start := g.clock.Now()
	res, err := g.runner.Run(ctx, cmd)
	d := g.clock.Now().Sub(start)

	g.metrics.CommandRun(name, err == nil && res.ExitCode == 0, d)
	g.publish(events.Event{Name: events.CommandRun, Command: cmd.String(), ExitCode: res.ExitCode, Duration: d, Err: err})
	if err != nil {
		return res, fmt.Errorf("run %s: %w", cmd, err)
	}
	return res, nil
}

// write renders files into the workspace.
func (g *Generator) write(files []render.File) error {
	for _, f := range files {
		content, err := g.renderer.Render(f.Template, f.Context)
		if err != nil {
			return fmt.Errorf("render %s: %w", f.Path, err)
		}

		perm := fs.FileMode(0o644)
		if f.Executable {
			perm = 0o755
		}
		if err := g.ws.WriteFile(f.Path, content, perm); err != nil {
			return fmt.Errorf("write %s: %w", f.Path, err)
		}

		g.metrics.FileRendered(f.Template)
		g.publish(events.Event{Name: events.FileWritten, Path: f.Path})
		g.logger.Debug().Str("path", f.Path).Str("template", f.Template).Msg("file written")
	}
	return nil
}

// warn logs and counts a bundle's unresolved bindings.
func (g *Generator) warn(b render.Bundle) {
	for _, w := range b.Warnings {
		g.metrics.BindingUnresolved(string(w.Operation))
		g.logger.Warn().
			Str("module", w.Module).
			Str("page", w.Page).
			Str("operation", string(w.Operation)).
			Msg("unresolved api binding")
	}
}

// emit writes a bundle and reports its warnings.
func (g *Generator) emit(b render.Bundle) error {
	g.warn(b)
	return g.write(b.Files)
}

// commit stages everything and commits without hooks.
func (g *Generator) commit(ctx context.Context, message string) error {
	g.logger.Info().Str("message", message).Msg("committing generated files")
	if err := g.run(ctx, g.opts.Toolchain.Git, "add", "."); err != nil {
		return err
	}
	return g.run(ctx, g.opts.Toolchain.Git, "commit", "-m", message, "--no-verify")
}

// install adds npm packages unless installs are skipped.
func (g *Generator) install(ctx context.Context, dev bool, pkgs []string) error {
	if g.opts.Toolchain.SkipInstall {
		g.logger.Info().Int("packages", len(pkgs)).Bool("dev", dev).Msg("skipping install")
		return nil
	}
	flag := "--save"
	if dev {
		flag = "--save-dev"
	}
	return g.run(ctx, g.opts.Toolchain.NPM, append([]string{"install", flag}, pkgs...)...)
}

// addUIComponents installs the shadcn components that are not in
// src/components/ui yet. Failures are logged, not returned.
func (g *Generator) addUIComponents(ctx context.Context, components []string) {
	missing, err := g.MissingUIComponents(components)
	if err != nil {
		g.logger.Error().Err(err).Msg("check ui components")
		return
	}
	if len(missing) == 0 {
		g.logger.Debug().Strs("components", components).Msg("all ui components present")
		return
	}

	args := append([]string{"shadcn@latest", "add"}, missing...)
	if err := g.run(ctx, g.opts.Toolchain.NPX, args...); err != nil {
		g.logger.Error().Err(err).Strs("components", missing).Msg("add ui components")
	}
}

// MissingUIComponents returns the components without a
// src/components/ui/<name>.tsx file, in input order.
func (g *Generator) MissingUIComponents(components []string) ([]string, error) {
	var missing []string
	for _, c := range components {
		ok, err := g.ws.Exists(path.Join("src/components/ui", c+".tsx"))
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, c)
		}
	}
	return missing, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
