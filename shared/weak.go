package shared

import "github.com/wippyai/ownership/control"

// Weak observes a shared group without keeping its payload alive. It keeps
// only the control block alive. The zero value is an empty handle.
type Weak[T any] struct {
	_     noCopy
	ptr   *T
	block *control.Block
}

// Lock promotes w to a strong handle, or returns an empty handle if the
// payload has been destroyed.
func (w *Weak[T]) Lock() Ptr[T] {
	if w.block == nil || !w.block.TryIncrementStrong() {
		return Ptr[T]{}
	}
	return Ptr[T]{ptr: w.ptr, block: w.block}
}

// Expired reports whether the payload has been destroyed or w is empty.
func (w *Weak[T]) Expired() bool {
	return w.UseCount() == 0
}

// UseCount returns the number of strong handles in the observed group.
func (w *Weak[T]) UseCount() uint {
	if w.block == nil {
		return 0
	}
	return w.block.GetStrong()
}

// Clone returns another weak handle to the same group.
func (w *Weak[T]) Clone() Weak[T] {
	if w.block != nil {
		w.block.IncrementWeak()
	}
	return Weak[T]{ptr: w.ptr, block: w.block}
}

// Move transfers the observation to the returned handle and empties w.
func (w *Weak[T]) Move() Weak[T] {
	ptr, b := w.ptr, w.block
	w.ptr, w.block = nil, nil
	return Weak[T]{ptr: ptr, block: b}
}

// Assign makes w observe other's group.
func (w *Weak[T]) Assign(other *Weak[T]) {
	if w == other {
		return
	}
	w.observe(other.ptr, other.block)
}

// Observe makes w observe p's group.
func (w *Weak[T]) Observe(p *Ptr[T]) {
	w.observe(p.ptr, p.block)
}

func (w *Weak[T]) observe(ptr *T, b *control.Block) {
	if b != nil {
		b.IncrementWeak()
	}
	old := w.block
	w.ptr, w.block = ptr, b
	if old != nil {
		old.DecrementWeak()
	}
}

// Reset stops observing and empties w.
func (w *Weak[T]) Reset() {
	b := w.block
	w.ptr, w.block = nil, nil
	if b != nil {
		b.DecrementWeak()
	}
}

// Swap exchanges the contents of w and other.
func (w *Weak[T]) Swap(other *Weak[T]) {
	w.ptr, other.ptr = other.ptr, w.ptr
	w.block, other.block = other.block, w.block
}
