// Package events publishes generation progress to subscribers.
//
// The generator emits step, file and command events; the CLI subscribes to
// print progress and tests subscribe to assert on what happened.
package events

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event names.
const (
	StepStarted  = "step.started"
	StepFinished = "step.finished"
	StepFailed   = "step.failed"
	FileWritten  = "file.written"
	CommandRun   = "command.run"
)

// Event is one published occurrence.
type Event struct {
	// Name is the event name (e.g., "step.finished", "file.written").
	Name string

	// Step is the generation step the event belongs to.
	Step string

	// Project is the project directory relative to the workspace root.
	Project string

	// Path is the written file (file events).
	Path string

	// Command is the command line (command events).
	Command string

	// ExitCode is the command's exit code (command events).
	ExitCode int

	Duration time.Duration
	Err      error
}

// Handler processes an event.
type Handler func(event Event) error

// Bus is a synchronous publish/subscribe bus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   zerolog.Logger
}

// NewBus creates a new event bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event.
// Supports wildcard subscriptions:
//   - "step.finished" - exact match
//   - "step.*" - all step events
//   - "*" - all events
func (b *Bus) Subscribe(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Publish calls every matching handler in registration order: exact
// subscribers, then group wildcards, then "*". Handler errors are logged.
// A nil bus drops the event.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	matched := b.match(event.Name)
	b.mu.RUnlock()

	for _, handler := range matched {
		if err := handler(event); err != nil {
			b.logger.Error().
				Err(err).
				Str("event", event.Name).
				Msg("event handler error")
		}
	}
}

func (b *Bus) match(name string) []Handler {
	var matched []Handler
	matched = append(matched, b.handlers[name]...)
	if group, _, ok := strings.Cut(name, "."); ok {
		matched = append(matched, b.handlers[group+".*"]...)
	}
	return append(matched, b.handlers["*"]...)
}
