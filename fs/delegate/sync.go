package delegate

import (
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// SyncHost presents a synchronous host as a plain blocking API.
//
// Every future the delegate returns is drained without waiting. A failed
// future is returned as an error. A future that has not settled means the
// delegate lied about its capabilities and yields
// core.ErrSynchronousDelegateExpected.
type SyncHost struct {
	delegate core.Host
}

// NewSyncHost wraps delegate. It fails with
// core.ErrSynchronousDelegateExpected unless the delegate reports
// synchronous capabilities.
func NewSyncHost(delegate core.Host) (*SyncHost, error) {
	if !delegate.Capabilities().Synchronous {
		return nil, core.ErrSynchronousDelegateExpected
	}
	return &SyncHost{delegate: delegate}, nil
}

func drain[T any](f *core.Future[T]) (T, error) {
	var zero T
	if f == nil {
		return zero, core.ErrSynchronousDelegateExpected
	}
	value, settled, err := f.TryGet()
	if err != nil {
		return zero, err
	}
	if !settled {
		return zero, core.ErrSynchronousDelegateExpected
	}
	return value, nil
}

// Delegate returns the wrapped host.
func (h *SyncHost) Delegate() core.Host {
	return h.delegate
}

// Capabilities returns the delegate's capabilities.
func (h *SyncHost) Capabilities() core.Capabilities {
	return h.delegate.Capabilities()
}

// Write replaces the contents of p.
func (h *SyncHost) Write(p vpath.Path, content []byte) error {
	_, err := drain(h.delegate.Write(p, content))
	return err
}

// Read returns the contents of p.
func (h *SyncHost) Read(p vpath.Path) ([]byte, error) {
	return drain(h.delegate.Read(p))
}

// Delete removes p.
func (h *SyncHost) Delete(p vpath.Path) error {
	_, err := drain(h.delegate.Delete(p))
	return err
}

// Rename moves from to to.
func (h *SyncHost) Rename(from, to vpath.Path) error {
	_, err := drain(h.delegate.Rename(from, to))
	return err
}

// List returns the names of the entries in p.
func (h *SyncHost) List(p vpath.Path) ([]vpath.Fragment, error) {
	return drain(h.delegate.List(p))
}

// Exists reports whether p exists.
func (h *SyncHost) Exists(p vpath.Path) (bool, error) {
	return drain(h.delegate.Exists(p))
}

// IsDirectory reports whether p is a directory.
func (h *SyncHost) IsDirectory(p vpath.Path) (bool, error) {
	return drain(h.delegate.IsDirectory(p))
}

// IsFile reports whether p is a regular file.
func (h *SyncHost) IsFile(p vpath.Path) (bool, error) {
	return drain(h.delegate.IsFile(p))
}

// Stat returns metadata for p. supported is false, with no error, when the
// delegate has no stat support.
func (h *SyncHost) Stat(p vpath.Path) (stats core.Stats, supported bool, err error) {
	f := h.delegate.Stat(p)
	if f == nil {
		return nil, false, nil
	}
	stats, err = drain(f)
	return stats, true, err
}

// Watch returns the delegate's stream unchanged.
func (h *SyncHost) Watch(p vpath.Path, opts core.WatchOptions) core.WatchStream {
	return h.delegate.Watch(p, opts)
}
