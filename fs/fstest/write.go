package fstest

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// TestWrite tests Write, including creation of missing parent directories.
func TestWrite(t *testing.T, h core.Host, config HostTestConfig) {
	config.run(t, "Write", "CreatesParents", func(t *testing.T) {
		testWriteCreatesParents(t, h)
	})
	config.run(t, "Write", "Overwrite", func(t *testing.T) {
		testWriteOverwrite(t, h)
	})
	config.run(t, "Write", "IntoExistingDirectory", func(t *testing.T) {
		testWriteIntoExisting(t, h)
	})
}

func testWriteCreatesParents(t *testing.T, h core.Host) {
	MustAwait(t, h.Write("/a/b/c.txt", []byte("hi")))

	for _, dir := range []vpath.Path{"/a", "/a/b"} {
		if !MustAwait(t, h.IsDirectory(dir)) {
			t.Errorf("IsDirectory(%s): got false, want true", dir)
		}
	}

	got := MustAwait(t, h.List("/a/b"))
	want := []vpath.Fragment{"c.txt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List(/a/b) mismatch (-want +got):\n%s", diff)
	}
}

func testWriteOverwrite(t *testing.T, h core.Host) {
	MustAwait(t, h.Write("/overwrite.txt", []byte("first version, longer")))
	MustAwait(t, h.Write("/overwrite.txt", []byte("second")))

	got := MustAwait(t, h.Read("/overwrite.txt"))
	if !bytes.Equal(got, []byte("second")) {
		t.Errorf("Read(/overwrite.txt): got %q, want %q", got, "second")
	}
}

func testWriteIntoExisting(t *testing.T, h core.Host) {
	MustAwait(t, h.Write("/existing/one.txt", []byte("1")))
	MustAwait(t, h.Write("/existing/two.txt", []byte("2")))

	got := MustAwait(t, h.List("/existing"))
	want := []vpath.Fragment{"one.txt", "two.txt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List(/existing) mismatch (-want +got):\n%s", diff)
	}
}
