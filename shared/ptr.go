package shared

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/ownership"
	"github.com/wippyai/ownership/alloc"
	"github.com/wippyai/ownership/control"
	"github.com/wippyai/ownership/errors"
)

// noCopy lets go vet's copylocks check flag handles copied by assignment.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Ptr is a shared ownership handle. The zero value is an empty handle.
type Ptr[T any] struct {
	_     noCopy
	ptr   *T
	block *control.Block
}

// New takes ownership of p, allocated from the default allocator. The payload
// is destroyed with alloc.Delete when the last handle is reset. A nil p
// yields an empty handle.
func New[T any](p *T) Ptr[T] {
	return NewIn(alloc.Default(), p)
}

// NewIn is New with an explicit allocator for both the control block and the
// payload's deletion.
func NewIn[T any](a ownership.Allocator, p *T) Ptr[T] {
	return newPointer(a, p, func(p *T) {
		if err := alloc.Delete(a, p); err != nil {
			alloc.Logger().Error("shared payload deletion failed", zap.String("type", typeName[T]()), zap.Error(err))
		}
	})
}

// NewWithDeleter takes ownership of p and destroys it with deleter.
func NewWithDeleter[T any](p *T, deleter func(*T)) Ptr[T] {
	return newPointer(alloc.Default(), p, deleter)
}

func newPointer[T any](a ownership.Allocator, p *T, deleter func(*T)) Ptr[T] {
	if p == nil {
		return Ptr[T]{}
	}
	var b *control.Block
	b = control.NewPointer(a, p, func(p *T) {
		unbindSelf(p, b)
		deleter(p)
	})
	bindSelf(p, b)
	return Ptr[T]{ptr: p, block: b}
}

// Make allocates a payload and its control block together from the default
// allocator. init, if not nil, initializes the payload before any handle can
// observe it.
func Make[T any](init func(*T)) Ptr[T] {
	return MakeIn(alloc.Default(), init)
}

// MakeIn is Make with an explicit allocator.
func MakeIn[T any](a ownership.Allocator, init func(*T)) Ptr[T] {
	var b *control.Block
	var v *T
	v, b = control.NewEmplaced(a, func(v *T) { unbindSelf(v, b) })
	if init != nil {
		init(v)
	}
	bindSelf(v, b)
	return Ptr[T]{ptr: v, block: b}
}

// Alias returns a handle that shares src's group but exposes p. The group
// stays alive while the alias does.
func Alias[T, U any](src *Ptr[U], p *T) Ptr[T] {
	if src.block != nil {
		src.block.IncrementStrong()
	}
	return Ptr[T]{ptr: p, block: src.block}
}

// FromWeak promotes w. It fails with errors.ErrOwnerExpired when w is empty
// or its payload has been destroyed.
func FromWeak[T any](w *Weak[T]) (Ptr[T], error) {
	if w.block == nil || !w.block.TryIncrementStrong() {
		return Ptr[T]{}, errors.OwnerExpired(typeName[T]())
	}
	return Ptr[T]{ptr: w.ptr, block: w.block}, nil
}

// Get returns the exposed pointer, or nil for an empty handle.
func (p *Ptr[T]) Get() *T {
	return p.ptr
}

// UseCount returns the number of strong handles in the group, 0 if empty.
func (p *Ptr[T]) UseCount() uint {
	if p.block == nil {
		return 0
	}
	return p.block.GetStrong()
}

// IsNil reports whether the handle exposes no pointer.
func (p *Ptr[T]) IsNil() bool {
	return p.ptr == nil
}

// Equal reports whether both handles expose the same pointer.
func (p *Ptr[T]) Equal(other *Ptr[T]) bool {
	return p.ptr == other.ptr
}

// Clone returns another strong handle to the same group.
func (p *Ptr[T]) Clone() Ptr[T] {
	if p.block != nil {
		p.block.IncrementStrong()
	}
	return Ptr[T]{ptr: p.ptr, block: p.block}
}

// Move transfers ownership to the returned handle and empties p.
func (p *Ptr[T]) Move() Ptr[T] {
	ptr, b := p.ptr, p.block
	p.ptr, p.block = nil, nil
	return Ptr[T]{ptr: ptr, block: b}
}

// Assign makes p share other's group, releasing p's previous group.
func (p *Ptr[T]) Assign(other *Ptr[T]) {
	if p == other {
		return
	}
	if other.block != nil {
		other.block.IncrementStrong()
	}
	old := p.block
	p.ptr, p.block = other.ptr, other.block
	if old != nil {
		old.DecrementStrong()
	}
}

// MoveFrom transfers other's ownership into p, releasing p's previous group.
// other becomes empty.
func (p *Ptr[T]) MoveFrom(other *Ptr[T]) {
	if p == other {
		return
	}
	ptr, b := other.ptr, other.block
	other.ptr, other.block = nil, nil
	old := p.block
	p.ptr, p.block = ptr, b
	if old != nil {
		old.DecrementStrong()
	}
}

// Reset releases p's reference and empties it. Releasing the last strong
// reference destroys the payload.
func (p *Ptr[T]) Reset() {
	b := p.block
	p.ptr, p.block = nil, nil
	if b != nil {
		b.DecrementStrong()
	}
}

// ResetTo releases p's reference and takes ownership of next as New does.
// Resetting to the pointer p already exposes is a no-op.
func (p *Ptr[T]) ResetTo(next *T) {
	if next != nil && next == p.ptr {
		return
	}
	fresh := New(next)
	p.MoveFrom(&fresh)
}

// Swap exchanges the contents of p and other.
func (p *Ptr[T]) Swap(other *Ptr[T]) {
	p.ptr, other.ptr = other.ptr, p.ptr
	p.block, other.block = other.block, p.block
}

// Weak returns a weak handle observing p's group.
func (p *Ptr[T]) Weak() Weak[T] {
	if p.block != nil {
		p.block.IncrementWeak()
	}
	return Weak[T]{ptr: p.ptr, block: p.block}
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))
}
