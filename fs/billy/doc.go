// Package billy provides go-billy-backed storages for the VFS hosts.
//
// This package wraps go-billy's osfs (local) and memfs (in-memory)
// implementations in a thin adapter that implements core.Storage while
// keeping the underlying billy.Filesystem reachable through Unwrap.
//
// Usage:
//
//	// Real disk, rooted at a directory. Hosts over a LocalStorage can
//	// watch it for changes.
//	storage := billy.NewLocal("/srv/workspace")
//	h := host.NewAsync(storage)
//
//	// In-memory test double
//	h := host.NewSync(billy.NewMemory())
//
// # Thread Safety
//
// Storages are safe for concurrent use by multiple goroutines.
package billy
