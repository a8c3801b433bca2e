package linear

import (
	"github.com/wippyai/ownership/errors"
	"github.com/wippyai/ownership/unique"
)

// Region is an allocation in an arena's linear memory.
type Region struct {
	Ptr   uint32
	Size  uint32
	Align uint32
	arena *Arena
}

// NewRegion allocates a region of size bytes aligned to align.
func (a *Arena) NewRegion(size, align uint32) (*Region, error) {
	ptr, err := a.Alloc(size, align)
	if err != nil {
		return nil, err
	}
	return &Region{Ptr: ptr, Size: size, Align: align, arena: a}, nil
}

// Bytes returns a view of the region. The view aliases linear memory and is
// invalidated when the memory grows.
func (r *Region) Bytes() ([]byte, error) {
	data, ok := r.arena.mem.Read(r.Ptr, r.Size)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseArena, r.Ptr, r.Size, r.arena.mem.Size())
	}
	return data, nil
}

// Write copies data into the region at offset.
func (r *Region) Write(offset uint32, data []byte) error {
	if uint64(offset)+uint64(len(data)) > uint64(r.Size) {
		return errors.OutOfBounds(errors.PhaseArena, offset, uint32(len(data)), r.Size)
	}
	if !r.arena.mem.Write(r.Ptr+offset, data) {
		return errors.OutOfBounds(errors.PhaseArena, r.Ptr+offset, uint32(len(data)), r.arena.mem.Size())
	}
	return nil
}

// Deleter frees regions back to Arena. It is the stateful deleter for
// unique handles over regions.
type Deleter struct {
	Arena *Arena
}

// Delete frees r.
func (d Deleter) Delete(r *Region) {
	d.Arena.Free(r.Ptr, r.Size, r.Align)
}

// Own returns a unique handle that frees r when reset.
func (a *Arena) Own(r *Region) unique.Ptr[Region, Deleter] {
	return unique.NewWithDeleter(r, Deleter{Arena: a})
}
