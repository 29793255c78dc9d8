// Package pathutil maps virtual paths onto MinIO/S3 object keys.
package pathutil

import (
	"path"
	"strings"
)

// Normalize cleans a path and strips leading and trailing slashes.
// Returns "." for the root.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}

// NormalizePrefix normalizes a key prefix. Returns "" for the root.
func NormalizePrefix(prefix string) string {
	if p := Normalize(prefix); p != "." {
		return p
	}
	return ""
}

// JoinPath joins a prefix with a name to create a full S3 key.
// The root maps to the prefix itself.
func JoinPath(prefix, name string) string {
	name = Normalize(name)
	if name == "." {
		return prefix
	}
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// DirPrefix returns the listing prefix for the directory key.
func DirPrefix(key string) string {
	if key == "" || strings.HasSuffix(key, "/") {
		return key
	}
	return key + "/"
}
