package linear

import (
	"github.com/wippyai/ownership/unique"
)

// Batch owns regions that are released together, for example the scratch
// regions of a single guest call. Each region is held by its own unique
// handle; Reset frees them in reverse order of acquisition.
type Batch struct {
	arena   *Arena
	handles []*unique.Ptr[Region, Deleter]
}

// NewBatch returns an empty batch allocating from a.
func (a *Arena) NewBatch() *Batch {
	return &Batch{arena: a}
}

// NewRegion allocates a region owned by the batch.
func (b *Batch) NewRegion(size, align uint32) (*Region, error) {
	r, err := b.arena.NewRegion(size, align)
	if err != nil {
		return nil, err
	}
	h := new(unique.Ptr[Region, Deleter])
	*h = b.arena.Own(r)
	b.handles = append(b.handles, h)
	return r, nil
}

// Adopt moves ownership of h's region into the batch. h is left empty.
// An empty h is ignored.
func (b *Batch) Adopt(h *unique.Ptr[Region, Deleter]) {
	if h.IsNil() {
		return
	}
	owned := new(unique.Ptr[Region, Deleter])
	owned.MoveFrom(h)
	b.handles = append(b.handles, owned)
}

// Len returns the number of regions the batch owns.
func (b *Batch) Len() int {
	return len(b.handles)
}

// Reset frees every owned region, last acquired first, and leaves the batch
// empty and reusable.
func (b *Batch) Reset() {
	for i := len(b.handles) - 1; i >= 0; i-- {
		b.handles[i].Reset()
		b.handles[i] = nil
	}
	b.handles = b.handles[:0]
}
