// Package delegate provides hosts that wrap another host and change how
// some of its operations behave without changing the contract shape.
//
// SafeReadonlyHost degrades failures of speculative queries to safe
// defaults. SyncHost turns a synchronous host's futures into plain return
// values. Both hold exactly one delegate and can be stacked:
//
//	base := host.NewSync(billy.NewMemory())
//	sync, err := delegate.NewSyncHost(base)
//	if err != nil {
//	    return err // base is not synchronous
//	}
//	data, err := sync.Read("/config.json")
package delegate
