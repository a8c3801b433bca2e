package unique

import (
	"github.com/wippyai/ownership/alloc"
	"github.com/wippyai/ownership/pair"
)

// Array exclusively owns one array allocation and deletes it with a D.
type Array[T any, D ArrayDeleter[T]] struct {
	_    noCopy
	pair pair.Compressed[[]T, D]
}

// NewArray allocates n zero elements from the default allocator. n <= 0
// yields an empty handle.
func NewArray[T any](n int) Array[T, DefaultArray[T]] {
	s := alloc.NewArray[T](alloc.Default(), n)
	return Array[T, DefaultArray[T]]{pair: pair.Make(s, DefaultArray[T]{})}
}

// WrapArray takes ownership of s, allocated with alloc.NewArray from the
// default allocator.
func WrapArray[T any](s []T) Array[T, DefaultArray[T]] {
	return Array[T, DefaultArray[T]]{pair: pair.Make(s, DefaultArray[T]{})}
}

// WrapArrayWithDeleter takes ownership of s and deletes it with d.
func WrapArrayWithDeleter[T any, D ArrayDeleter[T]](s []T, d D) Array[T, D] {
	return Array[T, D]{pair: pair.Make(s, d)}
}

// At returns the address of element i.
func (a *Array[T, D]) At(i int) *T {
	return &a.pair.Value()[i]
}

// Len returns the number of owned elements.
func (a *Array[T, D]) Len() int {
	return len(a.pair.Value())
}

// Get returns the owned elements.
func (a *Array[T, D]) Get() []T {
	return a.pair.Value()
}

// Deleter returns the handle's deleter.
func (a *Array[T, D]) Deleter() *D {
	return a.pair.PolicyPtr()
}

// IsNil reports whether the handle owns nothing.
func (a *Array[T, D]) IsNil() bool {
	return len(a.pair.Value()) == 0
}

// Release gives up ownership without deleting and returns the elements.
func (a *Array[T, D]) Release() []T {
	return a.pair.SetValue(nil)
}

// Reset deletes the owned array, if any, and empties the handle.
func (a *Array[T, D]) Reset() {
	a.ResetTo(nil)
}

// ResetTo takes ownership of next and then deletes the previously owned
// array, unless it was empty or is the same allocation as next.
func (a *Array[T, D]) ResetTo(next []T) {
	old := a.pair.SetValue(next)
	if len(old) > 0 && !sameArray(old, next) {
		(*a.pair.PolicyPtr()).DeleteArray(old)
	}
}

// Swap exchanges elements and deleters with other.
func (a *Array[T, D]) Swap(other *Array[T, D]) {
	a.pair.Swap(&other.pair)
}

// Move transfers the elements and deleter to the returned handle. a is left
// empty.
func (a *Array[T, D]) Move() Array[T, D] {
	return Array[T, D]{pair: pair.Make(a.Release(), a.pair.Policy())}
}

// MoveFrom deletes a's current array and takes over other's elements and
// deleter. other is left empty.
func (a *Array[T, D]) MoveFrom(other *Array[T, D]) {
	if a == other {
		return
	}
	a.ResetTo(other.Release())
	a.pair.SetPolicy(other.pair.Policy())
}

func sameArray[T any](x, y []T) bool {
	return len(x) > 0 && len(y) > 0 && &x[0] == &y[0]
}
