package intrusive

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/ownership/alloc"
	"github.com/wippyai/ownership/counter"
)

// RefCounted supplies the embedded reference count. The zero value has a
// count of zero.
type RefCounted struct {
	counter.Simple
}

// Object is the constraint on intrusively counted types: PT is *T and
// carries a counter.
type Object[T any] interface {
	*T
	counter.Counter
}

// Destroyer is implemented by objects that destroy themselves when their
// count reaches zero.
type Destroyer interface {
	Destroy()
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Ptr is a shared handle to an intrusively counted object. The zero value is
// an empty handle.
type Ptr[T any, PT Object[T]] struct {
	_   noCopy
	ptr *T
}

// New wraps p and increments its count. A nil p yields an empty handle.
func New[T any, PT Object[T]](p PT) Ptr[T, PT] {
	if p != nil {
		p.IncRef()
	}
	return Ptr[T, PT]{ptr: (*T)(p)}
}

// Make allocates a T from the default allocator, runs init on it if init is
// not nil, and wraps it with a count of one.
func Make[T any, PT Object[T]](init func(PT)) Ptr[T, PT] {
	p := PT(alloc.New[T](alloc.Default()))
	if init != nil {
		init(p)
	}
	return New[T](p)
}

// Get returns the held object, or nil.
func (p *Ptr[T, PT]) Get() PT {
	return PT(p.ptr)
}

// UseCount returns the object's count, 0 if the handle is empty.
func (p *Ptr[T, PT]) UseCount() uint {
	if p.ptr == nil {
		return 0
	}
	return PT(p.ptr).RefCount()
}

// IsNil reports whether the handle holds nothing.
func (p *Ptr[T, PT]) IsNil() bool {
	return p.ptr == nil
}

// Equal reports whether both handles hold the same object.
func (p *Ptr[T, PT]) Equal(other *Ptr[T, PT]) bool {
	return p.ptr == other.ptr
}

// Clone returns another handle to the object and increments its count.
func (p *Ptr[T, PT]) Clone() Ptr[T, PT] {
	if p.ptr != nil {
		PT(p.ptr).IncRef()
	}
	return Ptr[T, PT]{ptr: p.ptr}
}

// Move transfers the reference to the returned handle without touching the
// count. p is left empty.
func (p *Ptr[T, PT]) Move() Ptr[T, PT] {
	ptr := p.ptr
	p.ptr = nil
	return Ptr[T, PT]{ptr: ptr}
}

// Assign makes p share other's object, releasing p's previous one.
func (p *Ptr[T, PT]) Assign(other *Ptr[T, PT]) {
	if p == other {
		return
	}
	if other.ptr != nil {
		PT(other.ptr).IncRef()
	}
	old := p.ptr
	p.ptr = other.ptr
	release[T, PT](old)
}

// MoveFrom takes over other's reference, releasing p's previous one. other is
// left empty.
func (p *Ptr[T, PT]) MoveFrom(other *Ptr[T, PT]) {
	if p == other {
		return
	}
	old := p.ptr
	p.ptr, other.ptr = other.ptr, nil
	release[T, PT](old)
}

// Reset releases the reference and empties the handle. The object is
// destroyed when this was the last reference.
func (p *Ptr[T, PT]) Reset() {
	old := p.ptr
	p.ptr = nil
	release[T, PT](old)
}

// ResetTo wraps next, incrementing its count, and then releases the previous
// object.
func (p *Ptr[T, PT]) ResetTo(next PT) {
	if next != nil {
		next.IncRef()
	}
	old := p.ptr
	p.ptr = (*T)(next)
	release[T, PT](old)
}

// Release detaches the object from the handle without decrementing its count
// and returns it. The caller becomes responsible for that reference.
func (p *Ptr[T, PT]) Release() PT {
	ptr := p.ptr
	p.ptr = nil
	return PT(ptr)
}

// Swap exchanges the objects held by p and other.
func (p *Ptr[T, PT]) Swap(other *Ptr[T, PT]) {
	p.ptr, other.ptr = other.ptr, p.ptr
}

func release[T any, PT Object[T]](ptr *T) {
	if ptr == nil {
		return
	}
	obj := PT(ptr)
	if obj.RefCount() == 0 {
		Logger().Warn("release of an object with zero count", zap.String("type", typeName[T]()))
		return
	}
	if obj.DecRef() > 0 {
		return
	}
	destroy[T](obj)
}

func destroy[T any, PT Object[T]](obj PT) {
	if d, ok := any(obj).(Destroyer); ok {
		d.Destroy()
		return
	}
	if err := alloc.Delete(alloc.Default(), (*T)(obj)); err != nil {
		Logger().Error("intrusive object deletion failed", zap.String("type", typeName[T]()), zap.Error(err))
	}
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))
}
