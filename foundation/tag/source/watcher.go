// File: watcher.go
// Title: Tag File Watcher
// Description: Watches tag files for changes with fsnotify and reports each
//              change once after a quiet period.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package source

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
	mdwlog "github.com/msto63/tagscript/foundation/core/log"
)

// DefaultDebounce is the quiet period used when none is configured
const DefaultDebounce = 300 * time.Millisecond

// Op describes what happened to a watched file
type Op int

const (
	// OpWrite means the file was created or its content changed
	OpWrite Op = iota

	// OpRemove means the file was removed or renamed away
	OpRemove
)

// String returns the string representation of the op
func (o Op) String() string {
	if o == OpRemove {
		return "remove"
	}
	return "write"
}

// Change is one debounced file change
type Change struct {
	// Name is the file name as it was passed to NewWatcher
	Name string
	Op   Op
}

// ChangeFunc handles a change. It runs on the watcher goroutine.
type ChangeFunc func(ctx context.Context, change Change)

// WatcherOptions configures a Watcher
type WatcherOptions struct {
	Debounce time.Duration
	Logger   *mdwlog.Logger
}

// Watcher reports changes to a fixed set of files. The parent directories
// are watched so that editors replacing a file by rename are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	names    map[string]string // absolute path -> name as given
	debounce time.Duration
	logger   *mdwlog.Logger

	closeOnce sync.Once
	stopCh    chan struct{}
}

// NewWatcher creates a watcher for the given OS paths
func NewWatcher(paths []string, opts WatcherOptions) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, mdwerror.New("no files to watch").WithCode(mdwerror.CodeInvalidInput).WithOperation("source.NewWatcher")
	}

	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.Discard()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create watcher").WithCode(mdwerror.CodeIOError).WithOperation("source.NewWatcher")
	}

	w := &Watcher{
		watcher:  fw,
		names:    make(map[string]string, len(paths)),
		debounce: debounce,
		logger:   logger.WithName("watcher"),
		stopCh:   make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, mdwerror.Wrap(err, "invalid path").WithCode(mdwerror.CodeInvalidInput).WithOperation("source.NewWatcher").WithDetail("file", p)
		}
		w.names[abs] = p

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, mdwerror.Wrap(err, "failed to watch directory").WithCode(mdwerror.CodeIOError).WithOperation("source.NewWatcher").WithDetail("directory", dir)
		}
		dirs[dir] = true
	}

	return w, nil
}

// Run delivers changes to fn until ctx is cancelled or Close is called
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	defer w.Close()

	fired := make(chan Change)
	timers := make(map[string]*time.Timer)
	pending := make(map[string]Op)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	w.logger.Debug("watching files", mdwlog.Fields{"files": len(w.names)})

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("stopping watcher (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Debug("stopping watcher (closed)")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			name, watched := w.names[abs]
			if !watched {
				continue
			}

			op := OpWrite
			switch {
			case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				op = OpRemove
			default:
				continue
			}
			pending[name] = op

			if t, exists := timers[name]; exists {
				t.Reset(w.debounce)
				continue
			}
			timers[name] = time.AfterFunc(w.debounce, func() {
				select {
				case fired <- Change{Name: name}:
				case <-w.stopCh:
				case <-ctx.Done():
				}
			})

		case change := <-fired:
			delete(timers, change.Name)
			change.Op = pending[change.Name]
			delete(pending, change.Name)

			w.logger.Debug("file changed", mdwlog.Fields{"file": change.Name, "op": change.Op.String()})
			fn(ctx, change)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorWithErr("watcher error", err)
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	return err
}
