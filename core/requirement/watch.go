package requirement

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher re-parses a requirement file whenever it changes on disk.
type Watcher struct {
	path     string
	logger   zerolog.Logger
	onChange func(Requirement)
}

// NewWatcher creates a watcher for path. onChange receives every
// successfully parsed revision; parse failures are logged and skipped.
func NewWatcher(path string, logger zerolog.Logger, onChange func(Requirement)) (*Watcher, error) {
	if _, err := FormatForPath(path); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	return &Watcher{
		path:     absPath,
		logger:   logger,
		onChange: onChange,
	}, nil
}

// Run blocks until ctx is done. The directory is watched rather than the
// file so editors that save by rename still trigger a reload.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}

	w.logger.Info().Str("path", w.path).Msg("watching requirement file for changes")

	filename := filepath.Base(w.path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("requirement file changed")
			w.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("file watcher error")

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) reload() {
	req, err := ParseFile(w.path)
	if err != nil {
		w.logger.Error().Err(err).Msg("requirement reload failed, keeping previous output")
		return
	}
	w.onChange(req)
}
