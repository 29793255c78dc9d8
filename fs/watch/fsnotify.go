package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
	"github.com/jmgilman/vfs/internal/logging"
)

// FSNotifyBackend attaches fsnotify watchers for storages rooted on the
// real filesystem. Virtual paths are mapped onto Root.
type FSNotifyBackend struct {
	root   string
	logger *logging.Logger
}

// FSNotifyOption configures an FSNotifyBackend.
type FSNotifyOption func(*FSNotifyBackend)

// WithBackendLogger sets the logger used for watcher errors.
func WithBackendLogger(logger *slog.Logger) FSNotifyOption {
	return func(b *FSNotifyBackend) {
		b.logger = logging.New(logger)
	}
}

// NewFSNotifyBackend creates a backend for the OS directory root.
func NewFSNotifyBackend(root string, opts ...FSNotifyOption) *FSNotifyBackend {
	b := &FSNotifyBackend{
		root:   root,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach implements Backend.
func (b *FSNotifyBackend) Attach(p vpath.Path, opts core.WatchOptions, emit EmitFunc) (Detacher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	target := vpath.ToSystem(b.root, p)
	if err := fw.Add(target); err != nil {
		_ = fw.Close()
		return nil, &fs.PathError{Op: "watch", Path: p.String(), Err: err}
	}

	w := &fsWatcher{
		backend:   b,
		fw:        fw,
		recursive: !opts.Shallow,
		emit:      emit,
		stopped:   make(chan struct{}),
	}
	if w.recursive {
		if err := w.addTree(target); err != nil {
			_ = fw.Close()
			return nil, &fs.PathError{Op: "watch", Path: p.String(), Err: err}
		}
	}

	go w.run()
	return w, nil
}

type fsWatcher struct {
	backend   *FSNotifyBackend
	fw        *fsnotify.Watcher
	recursive bool
	emit      EmitFunc
	stopped   chan struct{}
	once      sync.Once
}

// addTree adds every directory below dir to the watcher.
func (w *fsWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || name == dir {
			return nil
		}
		return w.fw.Add(name)
	})
}

func (w *fsWatcher) run() {
	ctx := context.Background()
	for {
		select {
		case <-w.stopped:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			kind, ok := eventKind(event.Op)
			if !ok {
				continue
			}
			if w.recursive && kind == core.EventCreated {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err == nil {
						err = w.fw.Add(event.Name)
					}
					if err != nil {
						w.backend.logger.Warn(ctx, "failed to watch new directory", "path", event.Name, "error", err.Error())
					}
				}
			}
			w.emit(core.WatchEvent{
				Path: vpath.FromSystem(w.backend.root, event.Name),
				Time: time.Now(),
				Kind: kind,
			})
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.backend.logger.Error(ctx, "watch error", "error", err.Error())
		}
	}
}

func (w *fsWatcher) Detach() error {
	var err error
	w.once.Do(func() {
		close(w.stopped)
		err = w.fw.Close()
	})
	return err
}

func eventKind(op fsnotify.Op) (core.EventKind, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return core.EventCreated, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return core.EventDeleted, true
	case op.Has(fsnotify.Write):
		return core.EventChanged, true
	default:
		return core.EventChanged, false
	}
}
