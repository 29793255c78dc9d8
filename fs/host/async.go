package host

import (
	"bytes"
	"context"
	"errors"
	"io/fs"

	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// AsyncHost is a core.Host whose operations run on their own goroutines.
// It holds no mutable state between calls and is safe for concurrent use.
type AsyncHost struct {
	base
	deleteConcurrency int
}

// NewAsync creates an asynchronous host over storage.
func NewAsync(storage core.Storage, opts ...Option) *AsyncHost {
	cfg := newConfig(opts)
	return &AsyncHost{
		base:              newBase(storage, cfg),
		deleteConcurrency: cfg.deleteConcurrency,
	}
}

// Capabilities reports that operations settle after the call returns.
func (h *AsyncHost) Capabilities() core.Capabilities {
	return core.Capabilities{Synchronous: false}
}

// Write replaces the contents of p, creating missing parent directories.
func (h *AsyncHost) Write(p vpath.Path, content []byte) *core.Future[struct{}] {
	p = clean(p)
	content = bytes.Clone(content)
	return core.Go(func() (struct{}, error) {
		if err := h.createParents(p); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, h.storage.WriteFile(p, content)
	})
}

// createParents walks up from p's parent until it finds an existing
// directory, then creates each missing segment on the way back down.
func (h *AsyncHost) createParents(p vpath.Path) error {
	var missing []vpath.Path
	for dir := vpath.Dirname(p); ; {
		_, err := h.storage.Stat(dir)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		parent := vpath.Dirname(dir)
		if parent == dir {
			return missingAncestorError(p)
		}
		missing = append(missing, dir)
		dir = parent
	}

	logger := h.logger.WithOperation("write")
	for i := len(missing) - 1; i >= 0; i-- {
		if err := h.storage.Mkdir(missing[i]); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
		logger.Debug(context.Background(), "created directory", "path", missing[i].String())
	}
	return nil
}

// Read returns the contents of p.
func (h *AsyncHost) Read(p vpath.Path) *core.Future[[]byte] {
	p = clean(p)
	return core.Go(func() ([]byte, error) {
		return h.read(p)
	})
}

// Delete removes p. A directory is removed with everything below it: files
// are unlinked concurrently, then directories one at a time with children
// before parents.
func (h *AsyncHost) Delete(p vpath.Path) *core.Future[struct{}] {
	p = clean(p)
	return core.Go(func() (struct{}, error) {
		return struct{}{}, h.delete(p)
	})
}

func (h *AsyncHost) delete(p vpath.Path) error {
	isDir, err := h.isDirectory(p)
	if err != nil {
		return err
	}
	if !isDir {
		return h.storage.Remove(p)
	}

	var files, dirs []vpath.Path
	if err := h.plan(p, &files, &dirs); err != nil {
		return err
	}
	h.logger.WithOperation("delete").WithPath(p.String()).Debug(context.Background(),
		"deleting directory tree", "files", len(files), "directories", len(dirs))

	// Once a removal fails the group context is cancelled and queued
	// removals are skipped.
	g, ctx := errgroup.WithContext(context.Background())
	if h.deleteConcurrency > 0 {
		g.SetLimit(h.deleteConcurrency)
	}
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return h.storage.Remove(file)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, dir := range dirs {
		if err := h.storage.Remove(dir); err != nil {
			return err
		}
	}
	return nil
}

// plan records every file below dir and every directory in post-order, so
// children always precede their parents. dir itself is last.
func (h *AsyncHost) plan(dir vpath.Path, files, dirs *[]vpath.Path) error {
	entries, err := h.storage.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		child := vpath.Join(dir, vpath.Fragment(entry.Name()))
		if entry.IsDir() {
			if err := h.plan(child, files, dirs); err != nil {
				return err
			}
			continue
		}
		*files = append(*files, child)
	}
	*dirs = append(*dirs, dir)
	return nil
}

// Rename moves from to to.
func (h *AsyncHost) Rename(from, to vpath.Path) *core.Future[struct{}] {
	from, to = clean(from), clean(to)
	return core.Go(func() (struct{}, error) {
		return struct{}{}, h.rename(from, to)
	})
}

// List returns the names of the entries in p.
func (h *AsyncHost) List(p vpath.Path) *core.Future[[]vpath.Fragment] {
	p = clean(p)
	return core.Go(func() ([]vpath.Fragment, error) {
		return h.list(p)
	})
}

// Exists reports whether p exists. The future never fails.
func (h *AsyncHost) Exists(p vpath.Path) *core.Future[bool] {
	p = clean(p)
	return core.Go(func() (bool, error) {
		return h.exists(p), nil
	})
}

// IsDirectory reports whether p is a directory.
func (h *AsyncHost) IsDirectory(p vpath.Path) *core.Future[bool] {
	p = clean(p)
	return core.Go(func() (bool, error) {
		return h.isDirectory(p)
	})
}

// IsFile reports whether p is a regular file.
func (h *AsyncHost) IsFile(p vpath.Path) *core.Future[bool] {
	p = clean(p)
	return core.Go(func() (bool, error) {
		return h.isFile(p)
	})
}

// Stat returns metadata for p.
func (h *AsyncHost) Stat(p vpath.Path) *core.Future[core.Stats] {
	p = clean(p)
	return core.Go(func() (core.Stats, error) {
		return h.stat(p)
	})
}

// Watch returns a shared stream of changes under p, or nil if the host has
// no watch backend.
func (h *AsyncHost) Watch(p vpath.Path, opts core.WatchOptions) core.WatchStream {
	return h.watch(clean(p), opts)
}

var _ core.Host = (*AsyncHost)(nil)
