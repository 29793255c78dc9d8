package host_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/afero"
	"github.com/jmgilman/vfs/fs/billy"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/fstest"
	"github.com/jmgilman/vfs/fs/host"
	"github.com/jmgilman/vfs/fs/vpath"
	"github.com/jmgilman/vfs/fs/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hostFactory func(storage core.Storage, opts ...host.Option) core.Host

func hostFlavors() map[string]hostFactory {
	return map[string]hostFactory{
		"async": func(storage core.Storage, opts ...host.Option) core.Host {
			return host.NewAsync(storage, opts...)
		},
		"sync": func(storage core.Storage, opts ...host.Option) core.Host {
			return host.NewSync(storage, opts...)
		},
	}
}

func TestConformance(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			t.Run("BillyMemory", func(t *testing.T) {
				fstest.TestSuite(t, func() core.Host {
					return newHost(billy.NewMemory())
				})
			})
			t.Run("BillyLocal", func(t *testing.T) {
				fstest.TestSuite(t, func() core.Host {
					return newHost(billy.NewLocal(t.TempDir()))
				})
			})
			t.Run("AferoMemMap", func(t *testing.T) {
				fstest.TestSuite(t, func() core.Host {
					return newHost(afero.NewMemMap())
				})
			})
			t.Run("AferoOs", func(t *testing.T) {
				fstest.TestSuite(t, func() core.Host {
					return newHost(afero.NewOs(t.TempDir()))
				})
			})
		})
	}
}

func TestCapabilities(t *testing.T) {
	assert.False(t, host.NewAsync(billy.NewMemory()).Capabilities().Synchronous)
	assert.True(t, host.NewSync(billy.NewMemory()).Capabilities().Synchronous)
}

func TestSyncHost_SettlesBeforeReturn(t *testing.T) {
	h := host.NewSync(billy.NewMemory())

	assert.True(t, h.Write("/x/y.txt", []byte("y")).Settled())
	assert.True(t, h.Read("/x/y.txt").Settled())
	assert.True(t, h.Read("/missing").Settled())
	assert.True(t, h.List("/x").Settled())
	assert.True(t, h.Exists("/x").Settled())
	assert.True(t, h.IsDirectory("/x").Settled())
	assert.True(t, h.IsFile("/x/y.txt").Settled())
	assert.True(t, h.Stat("/x").Settled())
	assert.True(t, h.Rename("/x/y.txt", "/x/z.txt").Settled())
	assert.True(t, h.Delete("/x").Settled())
}

func TestWrite_CreatesParentsTopDown(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			storage := fstest.NewRecordingStorage(billy.NewMemory())
			h := newHost(storage)

			fstest.MustAwait(t, h.Write("/a/b/c.txt", []byte("hi")))

			assert.Equal(t, []fstest.Op{
				{Name: "mkdir", Path: "/a"},
				{Name: "mkdir", Path: "/a/b"},
				{Name: "write", Path: "/a/b/c.txt"},
			}, storage.Ops())

			got := fstest.MustAwait(t, h.List("/a/b"))
			assert.Equal(t, []vpath.Fragment{"c.txt"}, got)
		})
	}
}

func TestWrite_WalksOffRoot(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			storage := fstest.NewRecordingStorage(billy.NewMemory())
			storage.FailOn("stat", "/", fs.ErrNotExist)
			h := newHost(storage)

			_, err := fstest.Await(t, h.Write("/a/b/c.txt", []byte("hi")))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeInvalidPath))
			assert.Empty(t, storage.OpsNamed("mkdir"))
			assert.Empty(t, storage.OpsNamed("write"))
		})
	}
}

func TestWrite_MkdirFailure(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			storage := fstest.NewRecordingStorage(billy.NewMemory())
			denied := stderrors.New("denied")
			storage.FailOn("mkdir", "/a/b", denied)
			h := newHost(storage)

			_, err := fstest.Await(t, h.Write("/a/b/c.txt", []byte("hi")))
			assert.ErrorIs(t, err, denied)
			assert.Empty(t, storage.OpsNamed("write"))
		})
	}
}

func TestDelete_ChildrenBeforeParents(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			storage := fstest.NewRecordingStorage(billy.NewMemory())
			h := newHost(storage)
			fstest.MustAwait(t, h.Write("/a/b/c.txt", []byte("hi")))
			storage.Reset()

			fstest.MustAwait(t, h.Delete("/a"))

			assert.Equal(t, []vpath.Path{"/a/b/c.txt", "/a/b", "/a"}, storage.OpsNamed("remove"))
			assert.False(t, fstest.MustAwait(t, h.Exists("/a")))
		})
	}
}

func TestDelete_DeepTreeOrdering(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			storage := fstest.NewRecordingStorage(billy.NewMemory())
			h := newHost(storage)
			for _, p := range []vpath.Path{
				"/root/x.txt",
				"/root/a/y.txt",
				"/root/a/b/z.txt",
				"/root/a/b/c/w.txt",
				"/root/d/v.txt",
			} {
				fstest.MustAwait(t, h.Write(p, []byte("data")))
			}
			fstest.MustAwait(t, h.Write("/root/empty/.keep", nil))
			fstest.MustAwait(t, h.Delete("/root/empty/.keep"))
			storage.Reset()

			fstest.MustAwait(t, h.Delete("/root"))

			removed := storage.OpsNamed("remove")
			position := make(map[vpath.Path]int, len(removed))
			for i, p := range removed {
				position[p] = i
			}
			require.Len(t, position, len(removed), "an entry was removed twice")

			for p, i := range position {
				if vpath.IsRoot(p) {
					continue
				}
				for parent := vpath.Dirname(p); parent != "/"; parent = vpath.Dirname(parent) {
					j, ok := position[parent]
					require.True(t, ok, "ancestor %s of %s was never removed", parent, p)
					assert.Less(t, i, j, "%s removed before its descendant %s", parent, p)
				}
			}
			assert.Contains(t, removed, vpath.Path("/root/empty"))
		})
	}
}

func TestDelete_AbortsOnFailure(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			storage := fstest.NewRecordingStorage(billy.NewMemory())
			h := newHost(storage)
			fstest.MustAwait(t, h.Write("/a/b/c.txt", []byte("hi")))

			denied := stderrors.New("denied")
			storage.FailOn("remove", "/a/b/c.txt", denied)

			_, err := fstest.Await(t, h.Delete("/a"))
			assert.ErrorIs(t, err, denied)
			assert.NotContains(t, storage.OpsNamed("remove"), vpath.Path("/a/b"))
			assert.NotContains(t, storage.OpsNamed("remove"), vpath.Path("/a"))
			assert.True(t, fstest.MustAwait(t, h.Exists("/a/b")))
		})
	}
}

func TestDelete_File(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			h := newHost(billy.NewMemory())
			fstest.MustAwait(t, h.Write("/file.txt", []byte("x")))
			fstest.MustAwait(t, h.Delete("/file.txt"))
			assert.False(t, fstest.MustAwait(t, h.Exists("/file.txt")))

			_, err := fstest.Await(t, h.Delete("/file.txt"))
			assert.ErrorIs(t, err, fs.ErrNotExist)
		})
	}
}

func TestExists_CoercesFailures(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			storage := fstest.NewRecordingStorage(billy.NewMemory())
			h := newHost(storage)
			fstest.MustAwait(t, h.Write("/secret.txt", []byte("x")))
			storage.FailOn("stat", "/secret.txt", fs.ErrPermission)

			got, err := fstest.Await(t, h.Exists("/secret.txt"))
			require.NoError(t, err)
			assert.False(t, got)

			_, err = fstest.Await(t, h.IsFile("/secret.txt"))
			assert.ErrorIs(t, err, fs.ErrPermission)
		})
	}
}

func TestPathsAreNormalized(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			h := newHost(billy.NewMemory())
			fstest.MustAwait(t, h.Write("a//b/./c.txt", []byte("hi")))

			got := fstest.MustAwait(t, h.Read("/a/b/../b/c.txt"))
			assert.Equal(t, "hi", string(got))
		})
	}
}

func TestWatch_UnsupportedWithoutBackend(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			h := newHost(billy.NewMemory())
			assert.Nil(t, h.Watch("/", core.WatchOptions{}))
		})
	}
}

func TestWatch_LocalStorageIsWatchable(t *testing.T) {
	h := host.NewAsync(billy.NewLocal(t.TempDir()))
	defer func() { _ = h.Close() }()
	assert.NotNil(t, h.Watch("/", core.WatchOptions{}))
}

// recordingBackend counts attach and detach calls and keeps the emit
// function of the current attachment.
type recordingBackend struct {
	mu       sync.Mutex
	attaches int
	detaches int
	emitFn   watch.EmitFunc
}

func (b *recordingBackend) Attach(_ vpath.Path, _ core.WatchOptions, emit watch.EmitFunc) (watch.Detacher, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attaches++
	b.emitFn = emit
	return watch.DetachFunc(func() error {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.detaches++
		b.emitFn = nil
		return nil
	}), nil
}

func (b *recordingBackend) emit(ev core.WatchEvent) {
	b.mu.Lock()
	fn := b.emitFn
	b.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

func (b *recordingBackend) attachCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attaches
}

func (b *recordingBackend) detachCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.detaches
}

func TestWatch_SharedAcrossSubscribers(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			backend := &recordingBackend{}
			h := newHost(billy.NewMemory(), host.WithWatchBackend(backend))

			stream := h.Watch("/data", core.WatchOptions{})
			require.NotNil(t, stream)

			subA, err := stream.Subscribe(context.Background())
			require.NoError(t, err)
			subB, err := h.Watch("/data", core.WatchOptions{}).Subscribe(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, backend.attachCount())

			backend.emit(core.WatchEvent{Path: "/data/file.txt", Time: time.Now(), Kind: core.EventCreated})
			for _, sub := range []core.Subscription{subA, subB} {
				select {
				case ev := <-sub.Events():
					assert.Equal(t, vpath.Path("/data/file.txt"), ev.Path)
					assert.Equal(t, core.EventCreated, ev.Kind)
				case <-time.After(2 * time.Second):
					t.Fatal("timed out waiting for event")
				}
			}

			subA.Unsubscribe()
			assert.Equal(t, 0, backend.detachCount())
			subB.Unsubscribe()
			subB.Unsubscribe()
			assert.Equal(t, 1, backend.detachCount())
		})
	}
}

func TestClose_DetachesWatchers(t *testing.T) {
	backend := &recordingBackend{}
	h := host.NewSync(billy.NewMemory(), host.WithWatchBackend(backend))

	_, err := h.Watch("/", core.WatchOptions{}).Subscribe(context.Background())
	require.NoError(t, err)

	require.NoError(t, h.Close())
	assert.Equal(t, 1, backend.detachCount())
}

// gatedStorage holds WriteFile until release is closed.
type gatedStorage struct {
	core.Storage
	release chan struct{}
}

func (g *gatedStorage) WriteFile(p vpath.Path, data []byte) error {
	<-g.release
	return g.Storage.WriteFile(p, data)
}

func TestAsyncHost_WriteCopiesContent(t *testing.T) {
	storage := &gatedStorage{Storage: billy.NewMemory(), release: make(chan struct{})}
	h := host.NewAsync(storage)

	buf := []byte("hi")
	f := h.Write("/a/b/c.txt", buf)
	buf[0], buf[1] = 'X', 'X'
	close(storage.release)
	fstest.MustAwait(t, f)

	got := fstest.MustAwait(t, h.Read("/a/b/c.txt"))
	assert.Equal(t, "hi", string(got), "mutating the caller's buffer after Write must not change what is written")
}

func TestAsyncHost_DeleteStopsQueuedRemovals(t *testing.T) {
	storage := fstest.NewRecordingStorage(billy.NewMemory())
	h := host.NewAsync(storage, host.WithDeleteConcurrency(1))
	for i := 0; i < 20; i++ {
		fstest.MustAwait(t, h.Write(vpath.Path(fmt.Sprintf("/d/f%02d", i)), []byte("x")))
	}
	denied := stderrors.New("denied")
	storage.FailOn("remove", "/d/f00", denied)
	storage.Reset()

	_, err := fstest.Await(t, h.Delete("/d"))
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, []vpath.Path{"/d/f00"}, storage.OpsNamed("remove"))

	left := fstest.MustAwait(t, h.List("/d"))
	assert.Len(t, left, 20)
}

func TestWithLogger_RecordsCoercedExists(t *testing.T) {
	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			storage := fstest.NewRecordingStorage(billy.NewMemory())
			h := newHost(storage, host.WithLogger(logger))
			fstest.MustAwait(t, h.Write("/dir/secret.txt", []byte("x")))
			storage.FailOn("stat", "/dir/secret.txt", fs.ErrPermission)

			assert.False(t, fstest.MustAwait(t, h.Exists("/dir/secret.txt")))

			out := buf.String()
			assert.Contains(t, out, "existence check failed")
			assert.Contains(t, out, "operation=exists")
			assert.Contains(t, out, "path=/dir/secret.txt")
			assert.Contains(t, out, "operation=write")
			assert.Contains(t, out, "created directory")
		})
	}
}

func TestWithLogger_MissingPathIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := host.NewSync(billy.NewMemory(), host.WithLogger(logger))

	assert.False(t, fstest.MustAwait(t, h.Exists("/missing")))
	assert.NotContains(t, buf.String(), "existence check failed")
}

func TestWatch_DefaultCoversSubtree(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping filesystem watcher test in short mode")
	}

	for flavor, newHost := range hostFlavors() {
		t.Run(flavor, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

			h := newHost(billy.NewLocal(dir))
			defer func() { _ = h.(interface{ Close() error }).Close() }()

			sub, err := h.Watch("/", core.WatchOptions{}).Subscribe(context.Background())
			require.NoError(t, err)
			defer sub.Unsubscribe()

			fstest.MustAwait(t, h.Write("/sub/f.txt", []byte("f")))

			deadline := time.After(5 * time.Second)
			for {
				select {
				case ev, ok := <-sub.Events():
					require.True(t, ok, "events channel closed")
					if ev.Path == "/sub/f.txt" {
						return
					}
				case <-deadline:
					t.Fatal("no event for /sub/f.txt under a default watch of /")
				}
			}
		})
	}
}
