package fstest

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// TestList tests List on directories, files and missing paths.
func TestList(t *testing.T, h core.Host, config HostTestConfig) {
	config.run(t, "List", "Entries", func(t *testing.T) {
		testListEntries(t, h)
	})
	config.run(t, "List", "Restartable", func(t *testing.T) {
		testListRestartable(t, h)
	})
	config.run(t, "List", "NotExist", func(t *testing.T) {
		testListNotExist(t, h, config)
	})
}

func testListEntries(t *testing.T, h core.Host) {
	MustAwait(t, h.Write("/list/b.txt", []byte("b")))
	MustAwait(t, h.Write("/list/a.txt", []byte("a")))
	MustAwait(t, h.Write("/list/sub/c.txt", []byte("c")))

	got := MustAwait(t, h.List("/list"))
	slices.Sort(got)
	want := []vpath.Fragment{"a.txt", "b.txt", "sub"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List(/list) mismatch (-want +got):\n%s", diff)
	}
}

// testListRestartable checks that each call lists afresh.
func testListRestartable(t *testing.T, h core.Host) {
	MustAwait(t, h.Write("/restart/one.txt", []byte("1")))
	first := MustAwait(t, h.List("/restart"))

	MustAwait(t, h.Write("/restart/two.txt", []byte("2")))
	second := MustAwait(t, h.List("/restart"))

	if len(first) != 1 || len(second) != 2 {
		t.Errorf("List(/restart): got %v then %v, want 1 then 2 entries", first, second)
	}
}

func testListNotExist(t *testing.T, h core.Host, config HostTestConfig) {
	got, err := Await(t, h.List("/list-missing"))
	if config.VirtualDirectories {
		// A missing prefix is indistinguishable from an empty one.
		if err == nil && len(got) != 0 {
			t.Errorf("List(/list-missing): got %v, want no entries", got)
		}
		return
	}
	if err == nil {
		t.Errorf("List(/list-missing): got %v, want error", got)
	}
}
