// Package state holds the data model shared between the background poller
// and the UI: immutable container snapshots, the diff between consecutive
// snapshots, and a thread-safe store coordinating the two goroutines.
//
// The flow is a producer-consumer pair:
//
//	Poller:                          UI:
//	  ListContainers()
//	  state.New(...)      ──────>      store.View()
//	  store.Publish(...)   (mutex)     state.Diff(prev, curr)
//	  repeat...                        render
//
// Snapshots are replaced wholesale, never mutated, so a reader can hold
// one across a render without locking. On poll failure the store keeps the
// previous snapshot and records the error; the UI renders the stale data
// together with its age instead of blanking the table.
//
// Diff is a pure function over two snapshots. It partitions the union of
// their container ids into added/removed/changed/unchanged, where
// "changed" means the (status, health, ports) tuple differs. The UI uses
// the result for one-cycle row highlighting and for tearing down the log
// view when its target disappears.
package state
