// Package alloc implements the allocation capability consumed by ownership
// handles.
//
// Handles never decide how memory is obtained. They call an
// ownership.Allocator when a payload, array or control block comes into
// existence and again when it is destroyed:
//
//	a := alloc.NewTracker(nil)
//	p := alloc.New[Conn](a)       // Allocate(p, KindObject)
//	_ = alloc.Delete(a, p)        // Drop, zero, Deallocate(p, KindObject)
//
// # Allocators
//
//	Heap     counts live allocations per kind, never fails
//	Tracker  records every live pointer, reports double frees, unknown
//	         pointers, single/array mismatches and leaks
//	Pool[T]  recycles payloads through sync.Pool
//
// The process-wide Default allocator backs the stateless default deleters.
// Tests usually swap in a Tracker:
//
//	tr := alloc.NewTracker(nil)
//	defer alloc.SetDefault(tr)()
//	...
//	if err := tr.Leaks(); err != nil {
//		t.Fatal(err)
//	}
//
// # Observers
//
// Tracker publishes an Event for every allocation, deallocation and misuse.
// Observers see them in order, which is how destruction order is asserted.
//
// # Configuration
//
// Config selects and tunes the default allocator from YAML:
//
//	track: true
//	panic_on_misuse: true
//	log_level: debug
package alloc
