package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// TestRead tests Read against content written through the same host.
func TestRead(t *testing.T, h core.Host, config HostTestConfig) {
	config.run(t, "Read", "RoundTrip", func(t *testing.T) {
		testReadRoundTrip(t, h)
	})
	config.run(t, "Read", "Empty", func(t *testing.T) {
		testReadEmpty(t, h)
	})
	config.run(t, "Read", "NotExist", func(t *testing.T) {
		testReadNotExist(t, h)
	})
}

// testReadRoundTrip checks that write(p, b) followed by read(p) yields b.
func testReadRoundTrip(t *testing.T, h core.Host) {
	cases := map[string][]byte{
		"/read/plain.txt":      []byte("hello world"),
		"/read/nested/bin.dat": {0x00, 0xff, 0x10, 0x80},
		"/read/unicode.txt":    []byte("héllo wörld ✓"),
	}
	for p, want := range cases {
		MustAwait(t, h.Write(vpath.Path(p), want))

		got := MustAwait(t, h.Read(vpath.Path(p)))
		if !bytes.Equal(got, want) {
			t.Errorf("Read(%s): got %q, want %q", p, got, want)
		}
	}
}

func testReadEmpty(t *testing.T, h core.Host) {
	MustAwait(t, h.Write("/read/empty.txt", nil))

	got := MustAwait(t, h.Read("/read/empty.txt"))
	if len(got) != 0 {
		t.Errorf("Read(/read/empty.txt): got %d bytes, want 0", len(got))
	}
}

func testReadNotExist(t *testing.T, h core.Host) {
	_, err := Await(t, h.Read("/read/missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Read(/read/missing.txt): got error %v, want fs.ErrNotExist", err)
	}
}
