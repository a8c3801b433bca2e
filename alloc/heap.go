package alloc

import (
	"sync/atomic"

	"github.com/wippyai/ownership"
)

const kindSlots = int(ownership.KindCombined) + 1

// Stats is a snapshot of allocation counters, indexed by ownership.Kind.
type Stats struct {
	Live  [kindSlots]int64
	Total [kindSlots]int64
}

// LiveTotal returns the number of live allocations across all kinds.
func (s Stats) LiveTotal() int64 {
	var n int64
	for _, v := range s.Live {
		n += v
	}
	return n
}

// Heap is an allocator that relies on the Go heap and only counts.
// It cannot detect misuse.
type Heap struct {
	live  [kindSlots]atomic.Int64
	total [kindSlots]atomic.Int64
}

// NewHeap creates a counting allocator.
func NewHeap() *Heap {
	return &Heap{}
}

// Allocate records an allocation.
func (h *Heap) Allocate(_ any, kind ownership.Kind) {
	h.live[slot(kind)].Add(1)
	h.total[slot(kind)].Add(1)
}

// Deallocate records a deallocation.
func (h *Heap) Deallocate(_ any, kind ownership.Kind) error {
	h.live[slot(kind)].Add(-1)
	return nil
}

// Stats returns a snapshot of the counters.
func (h *Heap) Stats() Stats {
	var s Stats
	for i := range h.live {
		s.Live[i] = h.live[i].Load()
		s.Total[i] = h.total[i].Load()
	}
	return s
}

func slot(k ownership.Kind) int {
	if int(k) >= kindSlots {
		return 0
	}
	return int(k)
}
