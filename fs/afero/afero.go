// Package afero provides afero-backed storages for the VFS hosts.
//
//	h := host.NewSync(afero.NewMemMap())
//	h := host.NewAsync(afero.NewOs("/srv/workspace"))
package afero

import (
	"errors"
	"io/fs"
	"slices"
	"strings"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
	"github.com/spf13/afero"
)

const (
	defaultFileMode = 0o644
	defaultDirMode  = 0o755
)

var (
	errNotDir   = errors.New("not a directory")
	errNotEmpty = errors.New("directory not empty")
)

// Storage adapts an afero.Fs to core.Storage.
type Storage struct {
	afs afero.Fs
	typ core.FSType
}

// LocalStorage is a Storage confined to a directory of the real filesystem.
type LocalStorage struct {
	*Storage
	root string
}

// New wraps an existing afero.Fs.
func New(afs afero.Fs) *Storage {
	return &Storage{afs: afs, typ: core.FSTypeUnknown}
}

// NewMemMap creates an in-memory storage.
func NewMemMap() *Storage {
	return &Storage{afs: afero.NewMemMapFs(), typ: core.FSTypeMemory}
}

// NewOs creates a storage over the OS directory root. The virtual root "/"
// maps onto root and paths cannot escape it.
func NewOs(root string) *LocalStorage {
	return &LocalStorage{
		Storage: &Storage{afs: afero.NewBasePathFs(afero.NewOsFs(), root), typ: core.FSTypeLocal},
		root:    root,
	}
}

// Unwrap returns the underlying afero.Fs.
func (s *Storage) Unwrap() afero.Fs {
	return s.afs
}

// SystemRoot returns the OS directory the virtual root maps onto.
func (l *LocalStorage) SystemRoot() string {
	return l.root
}

func name(p vpath.Path) string {
	return vpath.Normalize(string(p)).String()
}

func pathError(op string, p vpath.Path, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return err
	}
	return &fs.PathError{Op: op, Path: p.String(), Err: err}
}

// ReadFile returns the contents of the named file.
func (s *Storage) ReadFile(p vpath.Path) ([]byte, error) {
	data, err := afero.ReadFile(s.afs, name(p))
	if err != nil {
		return nil, pathError("read", p, err)
	}
	return data, nil
}

// WriteFile creates or truncates the named file.
func (s *Storage) WriteFile(p vpath.Path, data []byte) error {
	if err := afero.WriteFile(s.afs, name(p), data, defaultFileMode); err != nil {
		return pathError("write", p, err)
	}
	return nil
}

// Mkdir creates a single directory. MemMapFs registers missing parents
// implicitly, so the parent is checked here.
func (s *Storage) Mkdir(p vpath.Path) error {
	parent := vpath.Dirname(p)
	if !vpath.IsRoot(parent) {
		info, err := s.afs.Stat(name(parent))
		if err != nil {
			return pathError("mkdir", p, err)
		}
		if !info.IsDir() {
			return pathError("mkdir", p, errNotDir)
		}
	}
	if err := s.afs.Mkdir(name(p), defaultDirMode); err != nil {
		return pathError("mkdir", p, err)
	}
	return nil
}

// Remove removes a file or an empty directory.
func (s *Storage) Remove(p vpath.Path) error {
	info, err := s.afs.Stat(name(p))
	if err != nil {
		return pathError("remove", p, err)
	}
	if info.IsDir() {
		empty, err := afero.IsEmpty(s.afs, name(p))
		if err != nil {
			return pathError("remove", p, err)
		}
		if !empty {
			return pathError("remove", p, errNotEmpty)
		}
	}
	if err := s.afs.Remove(name(p)); err != nil {
		return pathError("remove", p, err)
	}
	return nil
}

// Rename moves from to to.
func (s *Storage) Rename(from, to vpath.Path) error {
	if err := s.afs.Rename(name(from), name(to)); err != nil {
		return pathError("rename", from, err)
	}
	return nil
}

// ReadDir returns the entries of the named directory sorted by name.
func (s *Storage) ReadDir(p vpath.Path) ([]fs.DirEntry, error) {
	isDir, err := afero.IsDir(s.afs, name(p))
	if err != nil {
		return nil, pathError("readdir", p, err)
	}
	if !isDir {
		return nil, pathError("readdir", p, errNotDir)
	}

	infos, err := afero.ReadDir(s.afs, name(p))
	if err != nil {
		return nil, pathError("readdir", p, err)
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

// Stat returns metadata for the named file or directory.
func (s *Storage) Stat(p vpath.Path) (fs.FileInfo, error) {
	info, err := s.afs.Stat(name(p))
	if err != nil {
		return nil, pathError("stat", p, err)
	}
	return info, nil
}

// Type returns the storage type.
func (s *Storage) Type() core.FSType {
	return s.typ
}

// Compile-time interface checks.
var (
	_ core.Storage      = (*Storage)(nil)
	_ core.LocalStorage = (*LocalStorage)(nil)
)
