package watch

import (
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// EmitFunc delivers a single event to the hub.
type EmitFunc func(core.WatchEvent)

// Backend attaches OS or storage level watchers.
type Backend interface {
	// Attach starts watching p and reports every change through emit until
	// the returned Detacher is called. emit may be called from any goroutine,
	// including from within Attach.
	Attach(p vpath.Path, opts core.WatchOptions, emit EmitFunc) (Detacher, error)
}

// Detacher releases a backend watcher.
type Detacher interface {
	Detach() error
}

// DetachFunc adapts a function to the Detacher interface.
type DetachFunc func() error

// Detach calls f.
func (f DetachFunc) Detach() error {
	return f()
}
