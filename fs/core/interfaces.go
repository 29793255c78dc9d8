package core

import (
	"io/fs"

	"github.com/jmgilman/vfs/fs/vpath"
)

// FSType represents the underlying type of storage implementation.
type FSType int

const (
	// FSTypeUnknown indicates the storage type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local, disk-backed storage.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory storage.
	FSTypeMemory
	// FSTypeRemote indicates a remote storage (e.g., S3, MinIO).
	FSTypeRemote
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Stats is the metadata returned by Stat. Hosts return the storage's own
// fs.FileInfo, so Sys() exposes any backend-specific detail.
type Stats = fs.FileInfo

// Capabilities describes how a host executes its operations.
// Consumers may rely on it without probing.
type Capabilities struct {
	// Synchronous reports that every future returned by the host is
	// settled before the call that produced it returns.
	Synchronous bool
}

// ReadonlyHost defines the read-only subset of the host contract.
type ReadonlyHost interface {
	// Capabilities describes how the host executes its operations.
	Capabilities() Capabilities

	// Read returns the full contents of the file at p.
	Read(p vpath.Path) *Future[[]byte]

	// List returns the names of the entries in the directory at p.
	// Each call lists afresh; there is no persistent cursor.
	List(p vpath.Path) *Future[[]vpath.Fragment]

	// Exists reports whether p exists. It never fails: a failed probe
	// settles to false.
	Exists(p vpath.Path) *Future[bool]

	// IsDirectory reports whether p is a directory. A failed stat fails
	// the future.
	IsDirectory(p vpath.Path) *Future[bool]

	// IsFile reports whether p is a regular file. A failed stat fails
	// the future.
	IsFile(p vpath.Path) *Future[bool]

	// Stat returns metadata for p, or nil if the host has no stat support.
	Stat(p vpath.Path) *Future[Stats]
}

// Host is the full host contract every backend and decorator implements.
type Host interface {
	ReadonlyHost

	// Write replaces the contents of the file at p, creating missing
	// parent directories first.
	Write(p vpath.Path, content []byte) *Future[struct{}]

	// Delete removes the file or directory at p. Directories are removed
	// recursively, innermost entries first.
	Delete(p vpath.Path) *Future[struct{}]

	// Rename moves from to to.
	Rename(from, to vpath.Path) *Future[struct{}]

	// Watch returns a stream of change events under p, or nil if the host
	// has no watch support.
	Watch(p vpath.Path, opts WatchOptions) WatchStream
}

// Storage is the byte-level backend surface the concrete hosts consume.
// Implementations must be safe for concurrent use.
type Storage interface {
	// ReadFile returns the contents of the named file.
	ReadFile(p vpath.Path) ([]byte, error)

	// WriteFile creates or truncates the named file. The parent directory
	// must already exist on storages with real directories.
	WriteFile(p vpath.Path, data []byte) error

	// Mkdir creates a single directory. The parent must exist.
	Mkdir(p vpath.Path) error

	// Remove removes a file or an empty directory.
	Remove(p vpath.Path) error

	// Rename moves from to to.
	Rename(from, to vpath.Path) error

	// ReadDir returns the entries of the named directory sorted by name.
	ReadDir(p vpath.Path) ([]fs.DirEntry, error)

	// Stat returns metadata for the named file or directory.
	Stat(p vpath.Path) (fs.FileInfo, error)

	// Type returns the underlying storage type.
	Type() FSType
}

// LocalStorage is implemented by storages that map virtual paths onto a
// directory of the real filesystem. Hosts use it to attach OS-level watchers.
type LocalStorage interface {
	Storage

	// SystemRoot returns the OS directory the virtual root maps onto.
	SystemRoot() string
}
