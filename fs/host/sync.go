package host

import (
	"context"
	"errors"
	"io/fs"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// SyncHost is a core.Host whose futures are settled before each call
// returns. It can be driven without any waiting, for example through
// delegate.SyncHost.
type SyncHost struct {
	base
}

// NewSync creates a synchronous host over storage.
func NewSync(storage core.Storage, opts ...Option) *SyncHost {
	return &SyncHost{base: newBase(storage, newConfig(opts))}
}

// Capabilities reports that operations settle before the call returns.
func (h *SyncHost) Capabilities() core.Capabilities {
	return core.Capabilities{Synchronous: true}
}

// Write replaces the contents of p, creating missing parent directories.
func (h *SyncHost) Write(p vpath.Path, content []byte) *core.Future[struct{}] {
	p = clean(p)
	if err := h.createDir(p, vpath.Dirname(p)); err != nil {
		return core.Failed[struct{}](err)
	}
	return core.Settle(struct{}{}, h.storage.WriteFile(p, content))
}

// createDir creates dir after creating its own missing parents.
func (h *SyncHost) createDir(target, dir vpath.Path) error {
	_, err := h.storage.Stat(dir)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	parent := vpath.Dirname(dir)
	if parent == dir {
		return missingAncestorError(target)
	}
	if err := h.createDir(target, parent); err != nil {
		return err
	}
	if err := h.storage.Mkdir(dir); err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}
	h.logger.WithOperation("write").Debug(context.Background(), "created directory", "path", dir.String())
	return nil
}

// Read returns the contents of p.
func (h *SyncHost) Read(p vpath.Path) *core.Future[[]byte] {
	return core.Settle(h.read(clean(p)))
}

// Delete removes p. A directory is emptied by deleting each child in turn;
// the first failure at any depth aborts the whole call.
func (h *SyncHost) Delete(p vpath.Path) *core.Future[struct{}] {
	p = clean(p)
	isDir, err := h.isDirectory(p)
	if err != nil {
		return core.Failed[struct{}](err)
	}
	if isDir {
		names, err := h.list(p)
		if err != nil {
			return core.Failed[struct{}](err)
		}
		for _, name := range names {
			if _, err := h.Delete(vpath.Join(p, name)).Wait(); err != nil {
				return core.Failed[struct{}](err)
			}
		}
	}
	return core.Settle(struct{}{}, h.storage.Remove(p))
}

// Rename moves from to to.
func (h *SyncHost) Rename(from, to vpath.Path) *core.Future[struct{}] {
	return core.Settle(struct{}{}, h.rename(clean(from), clean(to)))
}

// List returns the names of the entries in p.
func (h *SyncHost) List(p vpath.Path) *core.Future[[]vpath.Fragment] {
	return core.Settle(h.list(clean(p)))
}

// Exists reports whether p exists. The future never fails.
func (h *SyncHost) Exists(p vpath.Path) *core.Future[bool] {
	return core.Resolved(h.exists(clean(p)))
}

// IsDirectory reports whether p is a directory.
func (h *SyncHost) IsDirectory(p vpath.Path) *core.Future[bool] {
	return core.Settle(h.isDirectory(clean(p)))
}

// IsFile reports whether p is a regular file.
func (h *SyncHost) IsFile(p vpath.Path) *core.Future[bool] {
	return core.Settle(h.isFile(clean(p)))
}

// Stat returns metadata for p.
func (h *SyncHost) Stat(p vpath.Path) *core.Future[core.Stats] {
	return core.Settle(h.stat(clean(p)))
}

// Watch returns a shared stream of changes under p, or nil if the host has
// no watch backend.
func (h *SyncHost) Watch(p vpath.Path, opts core.WatchOptions) core.WatchStream {
	return h.watch(clean(p), opts)
}

var _ core.Host = (*SyncHost)(nil)
