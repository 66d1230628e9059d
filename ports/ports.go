// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"io/fs"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Toolchain Ports
// -----------------------------------------------------------------------------

// Command is one external toolchain invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory relative to the workspace root ("" = root).
	Dir string

	// Env holds extra environment variables layered over the process env.
	Env map[string]string
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// CmdResult holds the result of a command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CommandRunner runs toolchain commands (npm, npx, git).
type CommandRunner interface {
	// Run executes cmd. A process that exits non-zero is not an error; its
	// code is in the result. Errors are reserved for failures to run at all
	// (binary not found, ctx canceled).
	Run(ctx context.Context, cmd Command) (CmdResult, error)
}

// -----------------------------------------------------------------------------
// Workspace Ports
// -----------------------------------------------------------------------------

// Workspace is the project tree being generated. Paths are slash separated
// and relative to Root.
type Workspace interface {
	// Root returns the absolute path of the workspace.
	Root() string

	// WriteFile replaces the file at path, creating parent directories.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// ReadFile returns the contents of the file at path.
	ReadFile(path string) ([]byte, error)

	// Exists reports whether path exists.
	Exists(path string) (bool, error)

	// MkdirAll creates the directory at path and any parents.
	MkdirAll(path string) error

	// Sub returns a workspace rooted at path.
	Sub(path string) Workspace
}

// -----------------------------------------------------------------------------
// Observability Ports
// -----------------------------------------------------------------------------

// Metrics records generation activity.
type Metrics interface {
	// FileRendered counts a written file by template.
	FileRendered(template string)

	// CommandRun records a toolchain command by binary and outcome.
	CommandRun(name string, ok bool, d time.Duration)

	// BindingUnresolved counts a missing API binding by operation.
	BindingUnresolved(operation string)

	// StepCompleted records the duration of a generation step.
	StepCompleted(step string, d time.Duration)
}
