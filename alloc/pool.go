package alloc

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/ownership"
)

// Pool is a typed allocator that recycles payloads through sync.Pool.
// Every Get is reported to the backing allocator as a fresh object and every
// Put as its deallocation, so a Tracker still sees pooled payloads.
type Pool[T any] struct {
	pool    sync.Pool
	backing ownership.Allocator
}

// NewPool creates a pool. constructor may be nil, in which case new(T) is
// used. backing may be nil, in which case Default() at call time is used.
func NewPool[T any](backing ownership.Allocator, constructor func() *T) *Pool[T] {
	p := &Pool[T]{backing: backing}
	p.pool.New = func() any {
		if constructor != nil {
			return constructor()
		}
		return new(T)
	}
	return p
}

// Get retrieves a payload from the pool.
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	p.allocator().Allocate(obj, ownership.KindObject)
	return obj
}

// Put destroys obj in place and returns it to the pool. A nil obj is a no-op.
func (p *Pool[T]) Put(obj *T) error {
	if obj == nil {
		return nil
	}
	Destroy(obj)
	if err := p.allocator().Deallocate(obj, ownership.KindObject); err != nil {
		return err
	}
	p.pool.Put(obj)
	return nil
}

func (p *Pool[T]) allocator() ownership.Allocator {
	if p.backing != nil {
		return p.backing
	}
	return Default()
}

// PoolDeleter returns payloads to a Pool. It is a stateful deleter for
// exclusive handles.
type PoolDeleter[T any] struct {
	Pool *Pool[T]
}

// Delete returns p to the pool. Errors are logged.
func (d PoolDeleter[T]) Delete(p *T) {
	if err := d.Pool.Put(p); err != nil {
		Logger().Error("pool put failed", zap.Error(err))
	}
}
