package billy

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

const (
	defaultFileMode = 0o644
	defaultDirMode  = 0o755
)

// Storage adapts a billy.Filesystem to core.Storage.
type Storage struct {
	bfs billy.Filesystem
	typ core.FSType
}

// LocalStorage is a Storage rooted at a directory of the real filesystem.
type LocalStorage struct {
	*Storage
	root string
}

// New wraps an existing billy.Filesystem.
func New(bfs billy.Filesystem) *Storage {
	return &Storage{bfs: bfs, typ: core.FSTypeUnknown}
}

// NewLocal creates a go-billy-backed storage over the OS directory root.
// The virtual root "/" maps onto root.
func NewLocal(root string) *LocalStorage {
	return &LocalStorage{
		Storage: &Storage{bfs: osfs.New(root), typ: core.FSTypeLocal},
		root:    root,
	}
}

// NewMemory creates a go-billy-backed in-memory storage.
// The storage is initially empty.
func NewMemory() *Storage {
	return &Storage{bfs: memfs.New(), typ: core.FSTypeMemory}
}

// Unwrap returns the underlying billy.Filesystem.
func (s *Storage) Unwrap() billy.Filesystem {
	return s.bfs
}

// SystemRoot returns the OS directory the virtual root maps onto.
func (l *LocalStorage) SystemRoot() string {
	return l.root
}

// Chroot returns a storage scoped to dir.
func (s *Storage) Chroot(dir vpath.Path) (*Storage, error) {
	sub, err := s.bfs.Chroot(name(dir))
	if err != nil {
		return nil, pathError("chroot", dir, err)
	}
	return &Storage{bfs: sub, typ: s.typ}, nil
}

// Chroot returns a local storage scoped to dir.
func (l *LocalStorage) Chroot(dir vpath.Path) (*LocalStorage, error) {
	sub, err := l.Storage.Chroot(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStorage{Storage: sub, root: vpath.ToSystem(l.root, dir)}, nil
}

// name converts a virtual path to the slash-separated form billy expects.
func name(p vpath.Path) string {
	return vpath.Normalize(string(p)).String()
}

// pathError records op and path on err unless it already carries them.
// memfs reports bare sentinel errors.
func pathError(op string, p vpath.Path, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return err
	}
	var le *os.LinkError
	if errors.As(err, &le) {
		return err
	}
	return &fs.PathError{Op: op, Path: p.String(), Err: err}
}

// ReadFile returns the contents of the named file.
func (s *Storage) ReadFile(p vpath.Path) ([]byte, error) {
	data, err := util.ReadFile(s.bfs, name(p))
	if err != nil {
		return nil, pathError("read", p, err)
	}
	return data, nil
}

// WriteFile creates or truncates the named file.
func (s *Storage) WriteFile(p vpath.Path, data []byte) error {
	if err := util.WriteFile(s.bfs, name(p), data, defaultFileMode); err != nil {
		return pathError("write", p, err)
	}
	return nil
}

// Mkdir creates a single directory. Unlike billy's MkdirAll, it fails if
// the directory exists or its parent is missing.
func (s *Storage) Mkdir(p vpath.Path) error {
	if _, err := s.bfs.Stat(name(p)); err == nil {
		return pathError("mkdir", p, fs.ErrExist)
	}
	parent := vpath.Dirname(p)
	if !vpath.IsRoot(parent) {
		info, err := s.bfs.Stat(name(parent))
		if err != nil {
			return pathError("mkdir", p, err)
		}
		if !info.IsDir() {
			return pathError("mkdir", p, fs.ErrInvalid)
		}
	}
	if err := s.bfs.MkdirAll(name(p), defaultDirMode); err != nil {
		return pathError("mkdir", p, err)
	}
	return nil
}

// Remove removes a file or an empty directory.
func (s *Storage) Remove(p vpath.Path) error {
	if err := s.bfs.Remove(name(p)); err != nil {
		return pathError("remove", p, err)
	}
	return nil
}

// Rename moves from to to.
func (s *Storage) Rename(from, to vpath.Path) error {
	if err := s.bfs.Rename(name(from), name(to)); err != nil {
		return pathError("rename", from, err)
	}
	return nil
}

// ReadDir returns the entries of the named directory sorted by name.
func (s *Storage) ReadDir(p vpath.Path) ([]fs.DirEntry, error) {
	info, err := s.Stat(p)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, pathError("readdir", p, errNotDir)
	}

	// Billy's ReadDir returns []fs.FileInfo, we need to convert to []fs.DirEntry
	infos, err := s.bfs.ReadDir(name(p))
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
	info, err := s.bfs.Stat(name(p))
	if err != nil {
		return nil, pathError("stat", p, err)
	}
	return info, nil
}

// Type returns the storage type.
func (s *Storage) Type() core.FSType {
	return s.typ
}

var errNotDir = errors.New("not a directory")

// Compile-time interface checks.
var (
	_ core.Storage      = (*Storage)(nil)
	_ core.LocalStorage = (*LocalStorage)(nil)
)
