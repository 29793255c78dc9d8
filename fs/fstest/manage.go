package fstest

import (
	"bytes"
	"testing"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// TestDelete tests Delete on files, nested directory trees and missing paths.
func TestDelete(t *testing.T, h core.Host, config HostTestConfig) {
	config.run(t, "Delete", "File", func(t *testing.T) {
		testDeleteFile(t, h)
	})
	config.run(t, "Delete", "NestedTree", func(t *testing.T) {
		testDeleteNestedTree(t, h)
	})
	config.run(t, "Delete", "NotExist", func(t *testing.T) {
		testDeleteNotExist(t, h)
	})
}

func testDeleteFile(t *testing.T, h core.Host) {
	MustAwait(t, h.Write("/delete/file.txt", []byte("x")))
	MustAwait(t, h.Delete("/delete/file.txt"))

	if MustAwait(t, h.Exists("/delete/file.txt")) {
		t.Error("Exists(/delete/file.txt) after Delete: got true, want false")
	}
}

// testDeleteNestedTree checks that after delete(p) succeeds, exists(p) and
// every descendant report false.
func testDeleteNestedTree(t *testing.T, h core.Host) {
	paths := []vpath.Path{
		"/tree/root.txt",
		"/tree/a/one.txt",
		"/tree/a/b/two.txt",
		"/tree/a/b/c/three.txt",
		"/tree/d/four.txt",
	}
	for _, p := range paths {
		MustAwait(t, h.Write(p, []byte(p)))
	}
	MustAwait(t, h.Write("/keep.txt", []byte("keep")))

	MustAwait(t, h.Delete("/tree"))

	for _, p := range append(paths, "/tree", "/tree/a", "/tree/a/b") {
		if MustAwait(t, h.Exists(p)) {
			t.Errorf("Exists(%s) after Delete(/tree): got true, want false", p)
		}
	}
	if !MustAwait(t, h.Exists("/keep.txt")) {
		t.Error("Exists(/keep.txt): sibling of deleted tree was removed")
	}
}

func testDeleteNotExist(t *testing.T, h core.Host) {
	if _, err := Await(t, h.Delete("/delete-missing")); err == nil {
		t.Error("Delete(/delete-missing): got nil error, want failure")
	}
}

// TestRename tests Rename of files.
func TestRename(t *testing.T, h core.Host, config HostTestConfig) {
	config.run(t, "Rename", "File", func(t *testing.T) {
		testRenameFile(t, h)
	})
	config.run(t, "Rename", "NotExist", func(t *testing.T) {
		testRenameNotExist(t, h)
	})
}

func testRenameFile(t *testing.T, h core.Host) {
	MustAwait(t, h.Write("/rename/old.txt", []byte("content")))
	MustAwait(t, h.Rename("/rename/old.txt", "/rename/new.txt"))

	if MustAwait(t, h.Exists("/rename/old.txt")) {
		t.Error("Exists(/rename/old.txt) after Rename: got true, want false")
	}
	got := MustAwait(t, h.Read("/rename/new.txt"))
	if !bytes.Equal(got, []byte("content")) {
		t.Errorf("Read(/rename/new.txt): got %q, want %q", got, "content")
	}
}

func testRenameNotExist(t *testing.T, h core.Host) {
	if _, err := Await(t, h.Rename("/rename-missing.txt", "/rename-target.txt")); err == nil {
		t.Error("Rename(/rename-missing.txt): got nil error, want failure")
	}
}
