package fstest

import (
	"testing"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// TestMetadata tests Exists, IsDirectory, IsFile and Stat.
func TestMetadata(t *testing.T, h core.Host, config HostTestConfig) {
	MustAwait(t, h.Write("/meta/dir/file.txt", []byte("12345")))

	config.run(t, "Metadata", "Exists", func(t *testing.T) {
		testMetadataExists(t, h)
	})
	config.run(t, "Metadata", "ExistsNeverFails", func(t *testing.T) {
		testMetadataExistsNeverFails(t, h)
	})
	config.run(t, "Metadata", "Kinds", func(t *testing.T) {
		testMetadataKinds(t, h)
	})
	config.run(t, "Metadata", "KindsNotExist", func(t *testing.T) {
		testMetadataKindsNotExist(t, h)
	})
	config.run(t, "Metadata", "Stat", func(t *testing.T) {
		testMetadataStat(t, h)
	})
}

func testMetadataExists(t *testing.T, h core.Host) {
	for p, want := range map[vpath.Path]bool{
		"/meta/dir/file.txt": true,
		"/meta/dir":          true,
		"/meta/missing":      false,
	} {
		if got := MustAwait(t, h.Exists(p)); got != want {
			t.Errorf("Exists(%s): got %v, want %v", p, got, want)
		}
	}
}

// testMetadataExistsNeverFails checks that exists returns a boolean for
// missing, malformed and nested-under-a-file paths.
func testMetadataExistsNeverFails(t *testing.T, h core.Host) {
	for _, p := range []vpath.Path{
		"/meta/nope/nope/nope",
		"/meta/dir/file.txt/child",
		"",
		"//meta//../..//x",
		"/meta/\x00bad",
	} {
		if _, err := Await(t, h.Exists(p)); err != nil {
			t.Errorf("Exists(%q): got error %v, want none", p, err)
		}
	}
}

func testMetadataKinds(t *testing.T, h core.Host) {
	if !MustAwait(t, h.IsFile("/meta/dir/file.txt")) {
		t.Error("IsFile(/meta/dir/file.txt): got false, want true")
	}
	if MustAwait(t, h.IsDirectory("/meta/dir/file.txt")) {
		t.Error("IsDirectory(/meta/dir/file.txt): got true, want false")
	}
	if !MustAwait(t, h.IsDirectory("/meta/dir")) {
		t.Error("IsDirectory(/meta/dir): got false, want true")
	}
	if MustAwait(t, h.IsFile("/meta/dir")) {
		t.Error("IsFile(/meta/dir): got true, want false")
	}
}

func testMetadataKindsNotExist(t *testing.T, h core.Host) {
	if _, err := Await(t, h.IsDirectory("/meta/missing")); err == nil {
		t.Error("IsDirectory(/meta/missing): got nil error, want failure")
	}
	if _, err := Await(t, h.IsFile("/meta/missing")); err == nil {
		t.Error("IsFile(/meta/missing): got nil error, want failure")
	}
}

// testMetadataStat accepts hosts without stat support, which return a nil
// future instead of failing.
func testMetadataStat(t *testing.T, h core.Host) {
	f := h.Stat("/meta/dir/file.txt")
	if f == nil {
		t.Skip("host has no stat support")
	}
	info := MustAwait(t, f)
	if info.IsDir() {
		t.Error("Stat(/meta/dir/file.txt).IsDir(): got true, want false")
	}
	if info.Size() != 5 {
		t.Errorf("Stat(/meta/dir/file.txt).Size(): got %d, want 5", info.Size())
	}

	dir := MustAwait(t, h.Stat("/meta/dir"))
	if !dir.IsDir() {
		t.Error("Stat(/meta/dir).IsDir(): got false, want true")
	}
}
