package unique

import (
	"github.com/wippyai/ownership/alloc"
	"github.com/wippyai/ownership/pair"
)

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Ptr exclusively owns one object and deletes it with a D. The zero value is
// an empty handle with a zero deleter.
type Ptr[T any, D Deleter[T]] struct {
	_    noCopy
	pair pair.Compressed[*T, D]
}

// New takes ownership of p, allocated from the default allocator.
func New[T any](p *T) Ptr[T, Default[T]] {
	return Ptr[T, Default[T]]{pair: pair.Make(p, Default[T]{})}
}

// NewWithDeleter takes ownership of p and deletes it with d.
func NewWithDeleter[T any, D Deleter[T]](p *T, d D) Ptr[T, D] {
	return Ptr[T, D]{pair: pair.Make(p, d)}
}

// Make allocates a T from the default allocator, runs init on it if init is
// not nil, and returns a handle owning it.
func Make[T any](init func(*T)) Ptr[T, Default[T]] {
	p := alloc.New[T](alloc.Default())
	if init != nil {
		init(p)
	}
	return Ptr[T, Default[T]]{pair: pair.Make(p, Default[T]{})}
}

// Get returns the owned pointer, or nil.
func (p *Ptr[T, D]) Get() *T {
	return p.pair.Value()
}

// Deleter returns the handle's deleter. Stateful deleters may be mutated
// through it.
func (p *Ptr[T, D]) Deleter() *D {
	return p.pair.PolicyPtr()
}

// IsNil reports whether the handle owns nothing.
func (p *Ptr[T, D]) IsNil() bool {
	return p.pair.Value() == nil
}

// Equal reports whether both handles hold the same pointer.
func (p *Ptr[T, D]) Equal(other *Ptr[T, D]) bool {
	return p.pair.Value() == other.pair.Value()
}

// Release gives up ownership without deleting and returns the pointer.
func (p *Ptr[T, D]) Release() *T {
	return p.pair.SetValue(nil)
}

// Reset deletes the owned object, if any, and empties the handle.
func (p *Ptr[T, D]) Reset() {
	p.ResetTo(nil)
}

// ResetTo takes ownership of next and then deletes the previously owned
// object. The deleter is skipped when the previous pointer is nil or equal
// to next.
func (p *Ptr[T, D]) ResetTo(next *T) {
	old := p.pair.SetValue(next)
	if old != nil && old != next {
		(*p.pair.PolicyPtr()).Delete(old)
	}
}

// Swap exchanges pointers and deleters with other.
func (p *Ptr[T, D]) Swap(other *Ptr[T, D]) {
	p.pair.Swap(&other.pair)
}

// Move transfers the pointer and deleter to the returned handle. p is left
// empty.
func (p *Ptr[T, D]) Move() Ptr[T, D] {
	return Ptr[T, D]{pair: pair.Make(p.Release(), p.pair.Policy())}
}

// MoveFrom deletes p's current object and takes over other's pointer and
// deleter. other is left empty.
func (p *Ptr[T, D]) MoveFrom(other *Ptr[T, D]) {
	if p == other {
		return
	}
	p.ResetTo(other.Release())
	p.pair.SetPolicy(other.pair.Policy())
}
