package shared

import (
	"github.com/wippyai/ownership/control"
	"github.com/wippyai/ownership/errors"
)

// EnableSelf gives a payload access to handles of itself. Embed it in the
// payload type T; the first Ptr that takes ownership of the payload links it.
// The link is weak and never keeps the payload alive.
type EnableSelf[T any] struct {
	self Weak[T]
}

type selfObserver interface {
	bindSelf(p any, b *control.Block)
	unbindSelf(b *control.Block)
}

// SharedFromSelf returns a new strong handle to the payload. It fails with
// errors.ErrNoOwner if no Ptr owns the payload: before the first owner takes
// it, and again once the owning group has destroyed it, since the link is
// cleared before destruction.
func (e *EnableSelf[T]) SharedFromSelf() (Ptr[T], error) {
	if e.self.block == nil {
		return Ptr[T]{}, errors.NoOwner(typeName[T](), nil)
	}
	e.self.block.IncrementStrong()
	return Ptr[T]{ptr: e.self.ptr, block: e.self.block}, nil
}

// WeakFromSelf returns a weak handle to the payload. It is empty if no Ptr
// has taken ownership of the payload yet.
func (e *EnableSelf[T]) WeakFromSelf() Weak[T] {
	return e.self.Clone()
}

func (e *EnableSelf[T]) bindSelf(p any, b *control.Block) {
	self, ok := p.(*T)
	if !ok {
		return
	}
	if e.self.block != nil && !e.self.Expired() {
		return
	}
	e.self.Reset()
	b.IncrementWeak()
	e.self.ptr, e.self.block = self, b
}

func (e *EnableSelf[T]) unbindSelf(b *control.Block) {
	if e.self.block == b {
		e.self.Reset()
	}
}

func bindSelf[T any](p *T, b *control.Block) {
	if so, ok := any(p).(selfObserver); ok {
		so.bindSelf(p, b)
	}
}

func unbindSelf[T any](p *T, b *control.Block) {
	if so, ok := any(p).(selfObserver); ok {
		so.unbindSelf(b)
	}
}
