package control

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// PresetWatcher re-applies a preset file whenever it is written or
// replaced.
type PresetWatcher struct {
	w      *fsnotify.Watcher
	path   string
	target Target
}

// NewPresetWatcher starts watching path. The containing directory is
// watched so that editors which save by rename are picked up too.
func NewPresetWatcher(path string, t Target) (*PresetWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("control: watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("control: watch %s: %w", path, err)
	}

	err = w.Add(filepath.Dir(abs))
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("control: watch %s: %w", path, err)
	}

	return &PresetWatcher{w: w, path: abs, target: t}, nil
}

// Run reloads the preset on every change until ctx ends or Close is called.
// Load and watcher errors go to onErr (if non-nil) and do not stop the loop.
func (pw *PresetWatcher) Run(ctx context.Context, onErr func(error)) error {
	report := func(err error) {
		if onErr != nil {
			onErr(err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-pw.w.Events:
			if !ok {
				return nil
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || filepath.Clean(ev.Name) != pw.path {
				continue
			}

			err := pw.reload()
			if err != nil {
				report(err)
			}
		case err, ok := <-pw.w.Errors:
			if !ok {
				return nil
			}

			report(fmt.Errorf("control: watch %s: %w", pw.path, err))
		}
	}
}

// Close stops the watcher. A blocked Run returns.
func (pw *PresetWatcher) Close() error {
	err := pw.w.Close()
	if errors.Is(err, fsnotify.ErrClosed) {
		return nil
	}

	return err
}

func (pw *PresetWatcher) reload() error {
	p, err := LoadPreset(pw.path)
	if err != nil {
		return err
	}

	return p.Apply(pw.target)
}

// WatchPreset applies path whenever it changes, until ctx ends.
func WatchPreset(ctx context.Context, path string, t Target, onErr func(error)) error {
	pw, err := NewPresetWatcher(path, t)
	if err != nil {
		return err
	}
	defer pw.Close()

	return pw.Run(ctx, onErr)
}
