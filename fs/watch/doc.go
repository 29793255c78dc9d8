// Package watch multiplexes filesystem change notifications.
//
// A Hub owns one backend watcher per watched path and hands out any number
// of subscriptions to it. The backend is attached when the first subscriber
// arrives and detached exactly once when the last subscriber leaves:
//
//	hub := watch.NewHub(watch.NewFSNotifyBackend("/srv/data"), watch.Config{})
//	sub, err := hub.Stream("/", core.WatchOptions{}).Subscribe(ctx)
//	for ev := range sub.Events() {
//	    fmt.Println(ev.Kind, ev.Path)
//	}
//
// Reference counting is explicit: ActiveWatches and Subscribers expose the
// counts so the lifecycle can be asserted in tests.
package watch
