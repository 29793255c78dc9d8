// Package vpath provides the normalized path type used by every host.
//
// A Path is always absolute and slash-separated, with no empty, "." or ".."
// segments. Relative input is resolved against the root. Equality is plain
// string equality.
package vpath

import (
	"path"
	"path/filepath"
	"strings"
)

// Path is a normalized, absolute virtual filesystem path.
type Path string

// Fragment is a single path component such as a file or directory name.
type Fragment string

// Root is the virtual filesystem root.
const Root Path = "/"

// Normalize cleans p and ensures it is absolute with forward slashes.
// It applies: backslash to slash, Clean, then roots the result.
func Normalize(p string) Path {
	p = strings.ReplaceAll(p, "\\", "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return Path(path.Clean(p))
}

// Resolve joins a relative p onto base. An absolute p is returned normalized.
func Resolve(base Path, p string) Path {
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "/") {
		return Normalize(p)
	}
	return Normalize(string(base) + "/" + p)
}

// Join appends fragments to p and normalizes the result.
func Join(p Path, fragments ...Fragment) Path {
	parts := make([]string, 0, len(fragments)+1)
	parts = append(parts, string(p))
	for _, f := range fragments {
		parts = append(parts, string(f))
	}
	return Normalize(path.Join(parts...))
}

// Dirname returns the parent of p. The parent of the root is the root.
func Dirname(p Path) Path {
	return Normalize(path.Dir(string(p)))
}

// Basename returns the last component of p, or "" for the root.
func Basename(p Path) Fragment {
	if IsRoot(p) {
		return ""
	}
	return Fragment(path.Base(string(p)))
}

// IsRoot reports whether p is the root path.
func IsRoot(p Path) bool {
	return Normalize(string(p)) == Root
}

// Split returns the fragments of p from the root down. The root has none.
func Split(p Path) []Fragment {
	trimmed := strings.Trim(string(Normalize(string(p))), "/")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, "/")
	fragments := make([]Fragment, len(parts))
	for i, part := range parts {
		fragments[i] = Fragment(part)
	}
	return fragments
}

// Relative returns p relative to the root, suitable for storages that key
// entries without a leading slash. The root maps to ".".
func Relative(p Path) string {
	trimmed := strings.TrimPrefix(string(Normalize(string(p))), "/")
	if trimmed == "" {
		return "."
	}
	return trimmed
}

// ToSystem maps p onto a host directory root using the OS separator.
func ToSystem(root string, p Path) string {
	return filepath.Join(root, filepath.FromSlash(Relative(p)))
}

// FromSystem maps an OS path under root back to a virtual path.
// Paths outside root are normalized as-is.
func FromSystem(root, name string) Path {
	rel, err := filepath.Rel(root, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Normalize(filepath.ToSlash(name))
	}
	return Normalize(filepath.ToSlash(rel))
}

// String returns the path as a string.
func (p Path) String() string {
	return string(p)
}

// String returns the fragment as a string.
func (f Fragment) String() string {
	return string(f)
}
