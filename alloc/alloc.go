package alloc

import (
	"sync"

	"github.com/wippyai/ownership"
)

var (
	defaultMu    sync.RWMutex
	defaultAlloc ownership.Allocator = NewHeap()
)

// Default returns the process-wide allocator used by default deleters.
func Default() ownership.Allocator {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultAlloc
}

// SetDefault replaces the default allocator and returns a function that
// restores the previous one. Handles remember the allocator they were created
// with, so swapping does not affect live groups.
func SetDefault(a ownership.Allocator) (restore func()) {
	defaultMu.Lock()
	prev := defaultAlloc
	defaultAlloc = a
	defaultMu.Unlock()

	return func() {
		defaultMu.Lock()
		defaultAlloc = prev
		defaultMu.Unlock()
	}
}

// New allocates a zero T and records it with a.
func New[T any](a ownership.Allocator) *T {
	p := new(T)
	a.Allocate(p, ownership.KindObject)
	return p
}

// Delete destroys *p in place and hands p back to a. A nil p is a no-op.
func Delete[T any](a ownership.Allocator, p *T) error {
	if p == nil {
		return nil
	}
	Destroy(p)
	return a.Deallocate(p, ownership.KindObject)
}

// NewArray allocates n zero values and records them as one array.
// n <= 0 returns nil without allocating.
func NewArray[T any](a ownership.Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	s := make([]T, n)
	a.Allocate(&s[0], ownership.KindArray)
	return s
}

// DeleteArray destroys the elements of s in reverse order and hands the
// array back to a. An empty s is a no-op.
func DeleteArray[T any](a ownership.Allocator, s []T) error {
	if len(s) == 0 {
		return nil
	}
	for i := len(s) - 1; i >= 0; i-- {
		Destroy(&s[i])
	}
	return a.Deallocate(&s[0], ownership.KindArray)
}

// Destroy runs the in-place destructor of *p: Drop when the payload
// implements ownership.Dropper, then zeroes the value. Storage is not
// deallocated.
func Destroy[T any](p *T) {
	if p == nil {
		return
	}
	if d, ok := any(p).(ownership.Dropper); ok {
		d.Drop()
	}
	var zero T
	*p = zero
}
