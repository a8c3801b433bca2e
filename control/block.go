package control

import (
	"go.uber.org/zap"

	"github.com/wippyai/ownership"
	"github.com/wippyai/ownership/alloc"
)

// Strategy selects how a block destroys its payload and releases itself.
type Strategy uint8

const (
	PointerOwning Strategy = iota + 1
	EmplacedOwning
)

func (s Strategy) String() string {
	switch s {
	case PointerOwning:
		return "pointer"
	case EmplacedOwning:
		return "emplaced"
	default:
		return "unknown"
	}
}

// State is the lifecycle state of a block.
type State uint8

const (
	Live State = iota
	WeakOnly
	Dead
)

func (s State) String() string {
	switch s {
	case Live:
		return "live"
	case WeakOnly:
		return "weak-only"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Block is the control block of one ownership group.
type Block struct {
	alloc ownership.Allocator

	// PointerOwning: deleter applied to the separately allocated payload.
	deleter func()

	// EmplacedOwning: in-place destructor and the combined allocation.
	destroyInPlace func()
	combined       any

	strong   uint
	weak     uint
	strategy Strategy

	objectDestroyed bool
	blockReleased   bool
}

// NewPointer creates a PointerOwning block for p with strong=1, weak=0.
// deleter runs exactly once, when the last strong reference goes away.
func NewPointer[T any](a ownership.Allocator, p *T, deleter func(*T)) *Block {
	b := &Block{
		alloc:    a,
		deleter:  func() { deleter(p) },
		strong:   1,
		strategy: PointerOwning,
	}
	a.Allocate(b, ownership.KindBlock)
	return b
}

type emplaced[T any] struct {
	block Block
	value T
}

// NewEmplaced creates an EmplacedOwning block whose payload lives in the same
// allocation, with strong=1, weak=0. finalize, if not nil, runs on the payload
// right before its in-place destructor.
func NewEmplaced[T any](a ownership.Allocator, finalize func(*T)) (*T, *Block) {
	e := &emplaced[T]{}
	e.block = Block{
		alloc: a,
		destroyInPlace: func() {
			if finalize != nil {
				finalize(&e.value)
			}
			alloc.Destroy(&e.value)
		},
		combined: e,
		strong:   1,
		strategy: EmplacedOwning,
	}
	a.Allocate(e, ownership.KindCombined)
	return &e.value, &e.block
}

// Strategy returns the block's strategy.
func (b *Block) Strategy() Strategy {
	return b.strategy
}

// State returns the block's lifecycle state.
func (b *Block) State() State {
	switch {
	case b.strong > 0:
		return Live
	case b.weak > 0:
		return WeakOnly
	default:
		return Dead
	}
}

// GetStrong returns the number of strong references.
func (b *Block) GetStrong() uint {
	return b.strong
}

// GetWeak returns the number of weak references.
func (b *Block) GetWeak() uint {
	return b.weak
}

// IncrementStrong adds a strong reference to a live group.
func (b *Block) IncrementStrong() {
	if b.strong == 0 {
		panic("control: strong reference added to a destroyed payload")
	}
	b.strong++
}

// TryIncrementStrong adds a strong reference if the payload is still alive
// and reports whether it did.
func (b *Block) TryIncrementStrong() bool {
	if b.strong == 0 {
		return false
	}
	b.strong++
	return true
}

// DecrementStrong removes a strong reference. Removing the last one destroys
// the payload, and releases the block if no weak references remain.
func (b *Block) DecrementStrong() {
	if b.strong == 0 {
		panic("control: strong count underflow")
	}
	b.strong--
	if b.strong > 0 {
		return
	}

	// Pinned: the payload may drop weak references to this group while it
	// is being destroyed.
	b.weak++
	b.DestroyObject()
	b.DecrementWeak()
}

// IncrementWeak adds a weak reference.
func (b *Block) IncrementWeak() {
	if b.blockReleased {
		panic("control: weak reference added to a released block")
	}
	b.weak++
}

// DecrementWeak removes a weak reference and releases the block when no
// references of either kind remain.
func (b *Block) DecrementWeak() {
	if b.weak == 0 {
		panic("control: weak count underflow")
	}
	b.weak--
	if b.strong == 0 && b.weak == 0 {
		b.DestroyBlock()
	}
}

// DestroyObject destroys the payload. It is called by DecrementStrong and
// runs at most once; later calls are ignored.
func (b *Block) DestroyObject() {
	if b.objectDestroyed {
		Logger().Warn("payload already destroyed", zap.Stringer("strategy", b.strategy))
		return
	}
	b.objectDestroyed = true

	switch b.strategy {
	case PointerOwning:
		del := b.deleter
		b.deleter = nil
		del()
	case EmplacedOwning:
		destroy := b.destroyInPlace
		b.destroyInPlace = nil
		destroy()
	}

	Logger().Debug("payload destroyed", zap.Stringer("strategy", b.strategy), zap.Uint("weak", b.weak))
}

// DestroyBlock releases the block's storage. It is called by the decrement
// operations once both counts are zero and runs at most once. If the payload
// has not been destroyed yet, it is destroyed first.
func (b *Block) DestroyBlock() {
	if b.blockReleased {
		Logger().Warn("block already released", zap.Stringer("strategy", b.strategy))
		return
	}
	if !b.objectDestroyed {
		b.DestroyObject()
	}
	b.blockReleased = true

	var err error
	switch b.strategy {
	case PointerOwning:
		err = b.alloc.Deallocate(b, ownership.KindBlock)
	case EmplacedOwning:
		err = b.alloc.Deallocate(b.combined, ownership.KindCombined)
		b.combined = nil
	}
	if err != nil {
		Logger().Error("block deallocation failed", zap.Stringer("strategy", b.strategy), zap.Error(err))
		return
	}

	Logger().Debug("block released", zap.Stringer("strategy", b.strategy))
}
