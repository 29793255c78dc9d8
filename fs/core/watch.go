package core

import (
	"context"
	"time"

	"github.com/jmgilman/vfs/fs/vpath"
)

// EventKind is the kind of change a WatchEvent reports.
type EventKind int

const (
	// EventChanged indicates the contents of an existing entry changed.
	EventChanged EventKind = iota
	// EventCreated indicates an entry was created.
	EventCreated
	// EventDeleted indicates an entry was removed or moved away.
	EventDeleted
)

// String returns a string representation of the EventKind.
func (k EventKind) String() string {
	switch k {
	case EventChanged:
		return "changed"
	case EventCreated:
		return "created"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// WatchEvent is a single change notification.
type WatchEvent struct {
	// Path is the normalized path of the entry that changed.
	Path vpath.Path
	// Time is when the change was observed.
	Time time.Time
	// Kind is the kind of change.
	Kind EventKind
}

// WatchOptions configures a watch. The zero value watches the whole
// subtree below the watched path, including directories created after the
// watch started.
type WatchOptions struct {
	// Shallow limits the watch to the watched path and its direct children.
	Shallow bool
}

// WatchStream is a shared, open-ended stream of change events.
//
// The underlying watch is attached when the first subscriber arrives and
// released when the last one leaves. All subscribers observe the same events.
// The stream never ends on its own.
type WatchStream interface {
	// Subscribe joins the stream. The subscription ends when Unsubscribe is
	// called or ctx is done, whichever happens first.
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription is one subscriber's view of a WatchStream.
type Subscription interface {
	// Events delivers events in the order they were observed. It is closed
	// after the subscription ends.
	Events() <-chan WatchEvent

	// Unsubscribe leaves the stream. It is safe to call more than once.
	Unsubscribe()
}
