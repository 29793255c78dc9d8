// Package host provides the concrete VFS hosts.
//
// AsyncHost and SyncHost implement core.Host over any core.Storage. They
// differ only in when their futures settle: AsyncHost runs each operation
// on its own goroutine, SyncHost settles every future before returning.
//
//	h := host.NewAsync(billy.NewLocal("/srv/workspace"), host.WithLogger(logger))
//	defer h.Close()
//
//	if _, err := h.Write("/a/b/c.txt", []byte("hi")).Await(ctx); err != nil {
//	    return err
//	}
//
// Hosts over a core.LocalStorage watch the real filesystem through fsnotify.
// Other storages report no watch support unless a backend is supplied with
// WithWatchBackend.
package host
