package linear

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/ownership/errors"
)

// Config holds configuration for arena creation
type Config struct {
	// InitialPages is the memory size at creation in 64KiB pages.
	// 0 means 1 page.
	InitialPages uint32

	// MaxPages caps growth in pages (64KiB each).
	// 0 means 256 pages (16MB). At most 65535.
	MaxPages uint32
}

const defaultMaxPages = 256

// reserved keeps offset 0 out of circulation so that it can mean "no region".
const reserved = 8

type span struct {
	off uint32
	len uint32
}

func (s span) end() uint64 {
	return uint64(s.off) + uint64(s.len)
}

// Arena allocates regions in a wazero-hosted linear memory.
type Arena struct {
	runtime wazero.Runtime
	module  api.Module
	mem     api.Memory
	free    []span // sorted by offset, never adjacent
	live    map[uint32]uint32
	mu      sync.Mutex
}

// New creates an arena backed by a fresh wazero runtime.
func New(ctx context.Context, cfg *Config) (*Arena, error) {
	initial, limit := uint32(1), uint32(defaultMaxPages)
	if cfg != nil {
		if cfg.InitialPages > 0 {
			initial = cfg.InitialPages
		}
		if cfg.MaxPages > 0 {
			limit = cfg.MaxPages
		}
	}
	if limit > maxPages {
		return nil, errors.InvalidInput(errors.PhaseArena, fmt.Sprintf("max pages %d exceeds %d", limit, maxPages))
	}
	if initial > limit {
		return nil, errors.InvalidInput(errors.PhaseArena, fmt.Sprintf("initial pages %d exceed max pages %d", initial, limit))
	}

	runtimeCfg := wazero.NewRuntimeConfig().WithMemoryLimitPages(limit)
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	mod, err := rt.Instantiate(ctx, memoryModule(initial, limit))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseArena, errors.KindAllocation, err, "instantiate memory module")
	}
	mem := mod.ExportedMemory(exportName)
	if mem == nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseArena, errors.KindAllocation, nil, "memory export missing")
	}

	a := &Arena{
		runtime: rt,
		module:  mod,
		mem:     mem,
		live:    make(map[uint32]uint32),
	}
	a.free = []span{{off: reserved, len: mem.Size() - reserved}}

	Logger().Debug("arena created", zap.Uint32("pages", initial), zap.Uint32("max_pages", limit))
	return a, nil
}

// Alloc reserves size bytes aligned to align and returns their offset.
// align must be a power of two; 0 means 1.
func (a *Arena) Alloc(size, align uint32) (uint32, error) {
	if size == 0 {
		return 0, errors.InvalidInput(errors.PhaseArena, "zero size allocation")
	}
	if align == 0 {
		align = 1
	}
	if align&(align-1) != 0 {
		return 0, errors.InvalidInput(errors.PhaseArena, fmt.Sprintf("alignment %d is not a power of two", align))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if ptr, ok := a.take(size, align); ok {
		return ptr, nil
	}
	if err := a.grow(size, align); err != nil {
		return 0, err
	}
	ptr, ok := a.take(size, align)
	if !ok {
		return 0, errors.AllocationFailed(errors.PhaseArena, size, align)
	}
	return ptr, nil
}

// Free returns a region to the arena. Offsets the arena did not hand out, and
// sizes that do not match the allocation, are logged and ignored.
func (a *Arena) Free(ptr, size, align uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	got, ok := a.live[ptr]
	if !ok {
		Logger().Warn("free of unknown region", zap.Uint32("ptr", ptr), zap.Uint32("size", size))
		return
	}
	if got != size {
		Logger().Warn("free size mismatch",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Uint32("allocated", got))
		return
	}
	delete(a.live, ptr)
	a.insert(span{off: ptr, len: size})
	Logger().Debug("region freed", zap.Uint32("ptr", ptr), zap.Uint32("size", size))
}

// Live returns the number of outstanding allocations.
func (a *Arena) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// Memory returns the underlying linear memory.
func (a *Arena) Memory() api.Memory {
	return a.mem
}

// Close releases the wazero runtime. Regions become invalid.
func (a *Arena) Close(ctx context.Context) error {
	if n := a.Live(); n > 0 {
		Logger().Warn("arena closed with live regions", zap.Int("live", n))
	}
	return a.runtime.Close(ctx)
}

func (a *Arena) take(size, align uint32) (uint32, bool) {
	for i, s := range a.free {
		start := alignUp(uint64(s.off), align)
		if start+uint64(size) > s.end() {
			continue
		}
		ptr := uint32(start)
		var rest []span
		if ptr > s.off {
			rest = append(rest, span{off: s.off, len: ptr - s.off})
		}
		if tail := s.end() - (start + uint64(size)); tail > 0 {
			rest = append(rest, span{off: ptr + size, len: uint32(tail)})
		}
		a.free = append(a.free[:i], append(rest, a.free[i+1:]...)...)
		a.live[ptr] = size
		return ptr, true
	}
	return 0, false
}

func (a *Arena) grow(size, align uint32) error {
	need := uint64(size) + uint64(align)
	if n := len(a.free); n > 0 && a.free[n-1].end() == uint64(a.mem.Size()) {
		// the new pages extend the trailing free span
		if tail := uint64(a.free[n-1].len); tail < need {
			need -= tail
		} else {
			need = uint64(align)
		}
	}
	pages := uint32((need + pageSize - 1) / pageSize)

	prev, ok := a.mem.Grow(pages)
	if !ok {
		return errors.AllocationFailed(errors.PhaseArena, size, align)
	}
	Logger().Debug("arena grown", zap.Uint32("from_pages", prev), zap.Uint32("by_pages", pages))
	a.insert(span{off: prev * pageSize, len: pages * pageSize})
	return nil
}

// insert adds s to the free list and merges it with adjacent spans.
func (a *Arena) insert(s span) {
	i := sort.Search(len(a.free), func(i int) bool { return a.free[i].off > s.off })
	a.free = append(a.free, span{})
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = s

	if i+1 < len(a.free) && a.free[i].end() == uint64(a.free[i+1].off) {
		a.free[i].len += a.free[i+1].len
		a.free = append(a.free[:i+1], a.free[i+2:]...)
	}
	if i > 0 && a.free[i-1].end() == uint64(a.free[i].off) {
		a.free[i-1].len += a.free[i].len
		a.free = append(a.free[:i], a.free[i+1:]...)
	}
}

func alignUp(v uint64, align uint32) uint64 {
	mask := uint64(align) - 1
	return (v + mask) &^ mask
}
