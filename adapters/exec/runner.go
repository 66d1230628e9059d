// Package exec runs toolchain commands (npm, npx, git) for the generator.
package exec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/artpar/reacthub/ports"
	"github.com/rs/zerolog"
)

// RealRunner runs commands with os/exec inside a workspace root.
type RealRunner struct {
	root string

	// Output, when set, receives a copy of stdout and stderr as the
	// command runs.
	Output io.Writer

	// Input is connected to the command's stdin (nil = no input).
	Input io.Reader
}

// NewRealRunner creates a runner whose relative directories resolve
// against root.
func NewRealRunner(root string) *RealRunner {
	return &RealRunner{root: root}
}

// Run executes the command and captures stdout/stderr.
func (r *RealRunner) Run(ctx context.Context, c ports.Command) (ports.CmdResult, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = filepath.Join(r.root, filepath.FromSlash(c.Dir))

	var stdout, stderr bytes.Buffer
	cmd.Stdin = r.Input
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if r.Output != nil {
		cmd.Stdout = io.MultiWriter(&stdout, r.Output)
		cmd.Stderr = io.MultiWriter(&stderr, r.Output)
	}

	if len(c.Env) > 0 {
		cmd.Env = cmd.Environ()
		for k, v := range c.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	start := time.Now()
	err := cmd.Run()
	result := ports.CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil && ctx.Err() != nil {
		result.ExitCode = -1
		return result, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, err
}

// DryRunner logs commands instead of running them and reports success.
type DryRunner struct {
	logger zerolog.Logger
}

// NewDryRunner creates a dry runner.
func NewDryRunner(logger zerolog.Logger) *DryRunner {
	return &DryRunner{logger: logger}
}

// Run logs c.
func (d *DryRunner) Run(ctx context.Context, c ports.Command) (ports.CmdResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.CmdResult{}, err
	}
	d.logger.Info().Str("dir", c.Dir).Str("cmd", c.String()).Msg("dry run")
	return ports.CmdResult{}, nil
}

// Recorder records commands and answers with canned results (for testing).
type Recorder struct {
	mu    sync.Mutex
	calls []ports.Command

	// Results maps a command line prefix to the result it gets. The longest
	// matching prefix wins; unmatched commands exit 0.
	Results map[string]ports.CmdResult

	// Errs maps a command line prefix to a run failure.
	Errs map[string]error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Results: map[string]ports.CmdResult{}, Errs: map[string]error{}}
}

// Run records c.
func (r *Recorder) Run(ctx context.Context, c ports.Command) (ports.CmdResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)

	if err := ctx.Err(); err != nil {
		return ports.CmdResult{}, err
	}
	line := c.String()
	if key, ok := longestPrefix(r.Errs, line); ok {
		return ports.CmdResult{}, r.Errs[key]
	}
	if key, ok := longestPrefix(r.Results, line); ok {
		return r.Results[key], nil
	}
	return ports.CmdResult{}, nil
}

// Calls returns the recorded commands in order.
func (r *Recorder) Calls() []ports.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.Command(nil), r.calls...)
}

// Lines returns the recorded command lines in order.
func (r *Recorder) Lines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

func longestPrefix[V any](m map[string]V, line string) (string, bool) {
	best, found := "", false
	for k := range m {
		if strings.HasPrefix(line, k) && len(k) >= len(best) {
			best, found = k, true
		}
	}
	return best, found
}

var (
	_ ports.CommandRunner = (*RealRunner)(nil)
	_ ports.CommandRunner = (*DryRunner)(nil)
	_ ports.CommandRunner = (*Recorder)(nil)
)
