package delegate

import (
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// SafeReadonlyHost exposes the read-only operations of a delegate, turning
// failures of List, IsDirectory, IsFile and Stat into "no" answers. Read
// and Exists pass through unchanged: a failed read is meaningful to the
// caller and Exists never fails.
type SafeReadonlyHost struct {
	delegate core.ReadonlyHost
}

// NewSafeReadonlyHost wraps delegate.
func NewSafeReadonlyHost(delegate core.ReadonlyHost) *SafeReadonlyHost {
	return &SafeReadonlyHost{delegate: delegate}
}

// Delegate returns the wrapped host.
func (h *SafeReadonlyHost) Delegate() core.ReadonlyHost {
	return h.delegate
}

// Capabilities returns the delegate's capabilities.
func (h *SafeReadonlyHost) Capabilities() core.Capabilities {
	return h.delegate.Capabilities()
}

// Read passes through to the delegate.
func (h *SafeReadonlyHost) Read(p vpath.Path) *core.Future[[]byte] {
	return h.delegate.Read(p)
}

// List returns an empty list if the delegate fails.
func (h *SafeReadonlyHost) List(p vpath.Path) *core.Future[[]vpath.Fragment] {
	return core.Recover(h.delegate.List(p), func(error) ([]vpath.Fragment, error) {
		return []vpath.Fragment{}, nil
	})
}

// Exists passes through to the delegate.
func (h *SafeReadonlyHost) Exists(p vpath.Path) *core.Future[bool] {
	return h.delegate.Exists(p)
}

// IsDirectory returns false if the delegate fails.
func (h *SafeReadonlyHost) IsDirectory(p vpath.Path) *core.Future[bool] {
	return core.Recover(h.delegate.IsDirectory(p), falseOnError)
}

// IsFile returns false if the delegate fails.
func (h *SafeReadonlyHost) IsFile(p vpath.Path) *core.Future[bool] {
	return core.Recover(h.delegate.IsFile(p), falseOnError)
}

// Stat settles with nil Stats if the delegate fails. A delegate without
// stat support still yields a nil future.
func (h *SafeReadonlyHost) Stat(p vpath.Path) *core.Future[core.Stats] {
	f := h.delegate.Stat(p)
	if f == nil {
		return nil
	}
	return core.Recover(f, func(error) (core.Stats, error) {
		return nil, nil
	})
}

func falseOnError(error) (bool, error) {
	return false, nil
}

var _ core.ReadonlyHost = (*SafeReadonlyHost)(nil)
