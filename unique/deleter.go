package unique

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/ownership/alloc"
)

// Deleter destroys an object owned by a Ptr.
type Deleter[T any] interface {
	Delete(p *T)
}

// ArrayDeleter destroys an array owned by an Array.
type ArrayDeleter[T any] interface {
	DeleteArray(s []T)
}

// Default deletes single objects through the default allocator. It carries no
// state.
type Default[T any] struct{}

// Delete destroys *p and returns it to alloc.Default().
func (Default[T]) Delete(p *T) {
	if err := alloc.Delete(alloc.Default(), p); err != nil {
		Logger().Error("delete failed", zap.String("type", typeName[T]()), zap.Error(err))
	}
}

// DefaultArray deletes arrays through the default allocator. It carries no
// state.
type DefaultArray[T any] struct{}

// DeleteArray destroys the elements of s and returns the array to
// alloc.Default().
func (DefaultArray[T]) DeleteArray(s []T) {
	if err := alloc.DeleteArray(alloc.Default(), s); err != nil {
		Logger().Error("array delete failed",
			zap.String("type", typeName[T]()),
			zap.Int("len", len(s)),
			zap.Error(err))
	}
}

// Func adapts a function to the Deleter interface.
type Func[T any] func(*T)

// Delete calls f(p).
func (f Func[T]) Delete(p *T) {
	f(p)
}

// ArrayFunc adapts a function to the ArrayDeleter interface.
type ArrayFunc[T any] func([]T)

// DeleteArray calls f(s).
func (f ArrayFunc[T]) DeleteArray(s []T) {
	f(s)
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))
}
