package host

import (
	"context"
	"errors"
	"io/fs"

	vfserrors "github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
	"github.com/jmgilman/vfs/fs/watch"
	"github.com/jmgilman/vfs/internal/logging"
)

// base holds the blocking primitives both hosts are built from.
type base struct {
	storage core.Storage
	logger  *logging.Logger
	hub     *watch.Hub
}

func newBase(storage core.Storage, cfg config) base {
	b := base{
		storage: storage,
		logger:  logging.New(cfg.logger),
	}

	backend := cfg.backend
	if backend == nil {
		if local, ok := storage.(core.LocalStorage); ok {
			backend = watch.NewFSNotifyBackend(local.SystemRoot(), watch.WithBackendLogger(cfg.logger))
		}
	}
	if backend != nil {
		b.hub = watch.NewHub(backend, watch.Config{Logger: cfg.logger})
	}
	return b
}

// Storage returns the storage the host operates on.
func (b *base) Storage() core.Storage {
	return b.storage
}

// Close releases every watcher the host attached.
func (b *base) Close() error {
	if b.hub == nil {
		return nil
	}
	return b.hub.Close()
}

func (b *base) read(p vpath.Path) ([]byte, error) {
	return b.storage.ReadFile(p)
}

func (b *base) list(p vpath.Path) ([]vpath.Fragment, error) {
	entries, err := b.storage.ReadDir(p)
	if err != nil {
		return nil, err
	}
	names := make([]vpath.Fragment, len(entries))
	for i, entry := range entries {
		names[i] = vpath.Fragment(entry.Name())
	}
	return names, nil
}

func (b *base) exists(p vpath.Path) bool {
	if _, err := b.storage.Stat(p); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			b.logger.WithOperation("exists").WithPath(p.String()).Debug(context.Background(),
				"existence check failed, reporting missing", "error", err.Error())
		}
		return false
	}
	return true
}

func (b *base) isDirectory(p vpath.Path) (bool, error) {
	info, err := b.storage.Stat(p)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (b *base) isFile(p vpath.Path) (bool, error) {
	info, err := b.storage.Stat(p)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (b *base) stat(p vpath.Path) (core.Stats, error) {
	return b.storage.Stat(p)
}

func (b *base) rename(from, to vpath.Path) error {
	return b.storage.Rename(from, to)
}

func (b *base) watch(p vpath.Path, opts core.WatchOptions) core.WatchStream {
	if b.hub == nil {
		return nil
	}
	return b.hub.Stream(p, opts)
}

func clean(p vpath.Path) vpath.Path {
	return vpath.Normalize(string(p))
}

// missingAncestorError reports a write whose ancestor walk reached the root
// without finding an existing directory.
func missingAncestorError(p vpath.Path) error {
	return vfserrors.WithContext(
		vfserrors.New(vfserrors.CodeInvalidPath, "no existing ancestor directory"),
		"path", p.String(),
	)
}
