// Package types provides fs.FileInfo and fs.DirEntry for objects and
// virtual directories.
package types // nolint:revive // Internal package with clear purpose

import (
	"io/fs"
	"time"
)

const (
	fileMode = fs.FileMode(0o644)
	dirMode  = fs.ModeDir | 0o755
)

// FileInfo implements fs.FileInfo for MinIO objects.
type FileInfo struct {
	FileName    string
	FileSize    int64
	FileModTime time.Time
	FileMode    fs.FileMode
}

// Name returns the name of the file.
func (fi *FileInfo) Name() string { return fi.FileName }

// Size returns the length in bytes for regular files.
func (fi *FileInfo) Size() int64 { return fi.FileSize }

// Mode returns the file mode bits.
func (fi *FileInfo) Mode() fs.FileMode { return fi.FileMode }

// ModTime returns the modification time.
func (fi *FileInfo) ModTime() time.Time { return fi.FileModTime }

// IsDir returns true if this describes a directory.
func (fi *FileInfo) IsDir() bool { return fi.FileMode.IsDir() }

// Sys returns the underlying data source (always nil for S3).
func (fi *FileInfo) Sys() interface{} { return nil }

// NewFileInfo describes an object.
func NewFileInfo(name string, size int64, modTime time.Time) *FileInfo {
	return &FileInfo{FileName: name, FileSize: size, FileModTime: modTime, FileMode: fileMode}
}

// NewDirInfo describes a virtual directory.
func NewDirInfo(name string) *FileInfo {
	return &FileInfo{FileName: name, FileMode: dirMode}
}

// Entry implements fs.DirEntry for objects and virtual directories.
type Entry struct {
	info *FileInfo
}

// NewEntry creates an entry for a listed object or common prefix.
func NewEntry(name string, isDir bool, size int64, modTime time.Time) *Entry {
	if isDir {
		return &Entry{info: NewDirInfo(name)}
	}
	return &Entry{info: NewFileInfo(name, size, modTime)}
}

// Name returns the name of the entry.
func (e *Entry) Name() string { return e.info.Name() }

// IsDir reports whether the entry describes a directory.
func (e *Entry) IsDir() bool { return e.info.IsDir() }

// Type returns the type bits for the entry.
func (e *Entry) Type() fs.FileMode { return e.info.Mode().Type() }

// Info returns the FileInfo for the entry.
func (e *Entry) Info() (fs.FileInfo, error) { return e.info, nil }

// Compile-time interface checks.
var (
	_ fs.FileInfo = (*FileInfo)(nil)
	_ fs.DirEntry = (*Entry)(nil)
)
