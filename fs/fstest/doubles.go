package fstest

import (
	"io/fs"
	"sync"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// Op is a single storage call observed by a RecordingStorage.
type Op struct {
	Name string
	Path vpath.Path
}

// RecordingStorage wraps a core.Storage, records every mutating call in
// order and can inject failures for chosen calls.
type RecordingStorage struct {
	core.Storage

	mu       sync.Mutex
	ops      []Op
	failures map[Op]error
}

// NewRecordingStorage wraps storage.
func NewRecordingStorage(storage core.Storage) *RecordingStorage {
	return &RecordingStorage{
		Storage:  storage,
		failures: make(map[Op]error),
	}
}

// FailOn makes the next and every later call of op on p return err.
// Valid ops are "write", "mkdir", "remove", "rename", "readdir" and "stat".
func (r *RecordingStorage) FailOn(op string, p vpath.Path, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[Op{Name: op, Path: p}] = err
}

// Ops returns the recorded mutating calls in order.
func (r *RecordingStorage) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// OpsNamed returns the paths of the recorded calls of op in order.
func (r *RecordingStorage) OpsNamed(op string) []vpath.Path {
	var paths []vpath.Path
	for _, o := range r.Ops() {
		if o.Name == op {
			paths = append(paths, o.Path)
		}
	}
	return paths
}

// Reset forgets the recorded calls. Injected failures are kept.
func (r *RecordingStorage) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

func (r *RecordingStorage) record(op string, p vpath.Path, mutating bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mutating {
		r.ops = append(r.ops, Op{Name: op, Path: p})
	}
	if err, ok := r.failures[Op{Name: op, Path: p}]; ok {
		return &fs.PathError{Op: op, Path: p.String(), Err: err}
	}
	return nil
}

// WriteFile records the call and delegates.
func (r *RecordingStorage) WriteFile(p vpath.Path, data []byte) error {
	if err := r.record("write", p, true); err != nil {
		return err
	}
	return r.Storage.WriteFile(p, data)
}

// Mkdir records the call and delegates.
func (r *RecordingStorage) Mkdir(p vpath.Path) error {
	if err := r.record("mkdir", p, true); err != nil {
		return err
	}
	return r.Storage.Mkdir(p)
}

// Remove records the call and delegates.
func (r *RecordingStorage) Remove(p vpath.Path) error {
	if err := r.record("remove", p, true); err != nil {
		return err
	}
	return r.Storage.Remove(p)
}

// Rename records the call and delegates.
func (r *RecordingStorage) Rename(from, to vpath.Path) error {
	if err := r.record("rename", from, true); err != nil {
		return err
	}
	return r.Storage.Rename(from, to)
}

// ReadDir delegates, honoring injected failures.
func (r *RecordingStorage) ReadDir(p vpath.Path) ([]fs.DirEntry, error) {
	if err := r.record("readdir", p, false); err != nil {
		return nil, err
	}
	return r.Storage.ReadDir(p)
}

// Stat delegates, honoring injected failures.
func (r *RecordingStorage) Stat(p vpath.Path) (fs.FileInfo, error) {
	if err := r.record("stat", p, false); err != nil {
		return nil, err
	}
	return r.Storage.Stat(p)
}

var _ core.Storage = (*RecordingStorage)(nil)
