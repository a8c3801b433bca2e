// Package ownership provides ownership handles for values whose lifetime is
// managed explicitly rather than by the garbage collector.
//
// The garbage collector reclaims Go memory, but it does not decide when a
// resource is finished: when a file is closed, when a pooled buffer goes back
// to its pool, when a region of wasm linear memory is freed. This library
// makes that decision with the classic ownership models: exclusive ownership,
// shared ownership with weak observation, and intrusive reference counting.
//
// # Architecture Overview
//
//	ownership/          Root package with the Allocator, Kind and Dropper contracts
//	├── alloc/          Allocators: counting heap, checking tracker, pools, config
//	│   └── linear/     Arena over wazero linear memory
//	├── pair/           Two-slot storage that elides zero-size policies
//	├── counter/        Saturating reference counter
//	├── control/        Control block shared by shared and weak handles
//	├── unique/         Exclusive handles with pluggable deleters
//	├── shared/         Shared and weak handles, self observation
//	├── intrusive/      Handles over objects that embed their own counter
//	└── errors/         Structured error types
//
// # Quick Start
//
// Shared ownership with a single allocation for payload and bookkeeping:
//
//	conn := shared.Make(func(c *Conn) { c.addr = "10.0.0.1:80" })
//	defer conn.Reset()
//
//	peer := conn.Clone()       // UseCount() == 2
//	watch := conn.Weak()       // does not keep the payload alive
//	peer.Reset()               // UseCount() == 1
//
//	if p := watch.Lock(); !p.IsNil() {
//	    defer p.Reset()
//	    use(p.Get())
//	}
//
// Exclusive ownership with a custom deleter:
//
//	buf := unique.NewWithDeleter(pool.Get(), alloc.PoolDeleter[Buffer]{Pool: pool})
//	defer buf.Reset()
//
// # Destruction
//
// A payload is destroyed when its last owning handle is reset. Destruction runs
// the payload's Drop method when it implements Dropper, zeroes the value, and
// hands the storage back to the Allocator that produced it.
//
// # Threading
//
// Handles and counters are not synchronized. A handle group must be used from a
// single goroutine, or guarded externally. Allocators may be shared.
package ownership
