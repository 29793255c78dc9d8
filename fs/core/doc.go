// Package core provides the host contract for the virtual filesystem.
//
// This package defines the operations every host must expose, the capability
// descriptor consumers rely on, and the byte-level Storage surface concrete
// hosts are built on. Consumers write against Host and never care whether the
// bytes live on disk, in memory or in a bucket.
//
// # Deferred Results
//
// Every host operation returns a *Future. A synchronous host hands back
// futures that are already settled when the call returns; an asynchronous
// host settles them later from another goroutine. The shape of the contract
// is identical for both, and Capabilities reports which one you have:
//
//	data, err := host.Read(vpath.Normalize("/a/b.txt")).Wait()
//
// # Interface Hierarchy
//
//   - ReadonlyHost: Read, List, Exists, IsDirectory, IsFile, Stat
//   - Host: ReadonlyHost plus Write, Delete, Rename, Watch
//   - Storage: byte-level backend consumed by the concrete hosts
//
// # Optional Capabilities
//
// Stat and Watch may be unsupported. A host signals this by returning nil
// from the call itself, which is distinct from a future that fails:
//
//	if f := host.Stat(p); f != nil {
//	    info, err := f.Wait()
//	}
//
// Storage capabilities are discovered with type assertions, following the
// io/fs convention:
//
//	if ls, ok := storage.(core.LocalStorage); ok {
//	    root := ls.SystemRoot()
//	}
package core
