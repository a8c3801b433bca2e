// Package intrusive provides shared ownership for objects that carry their own
// reference count.
//
// An object opts in by embedding RefCounted (or by implementing
// counter.Counter some other way). Handles then need no control block: a
// copy increments the embedded count, a reset decrements it, and the object
// is destroyed when the count reaches zero. There are no weak handles.
//
//	type Texture struct {
//		intrusive.RefCounted
//		id uint32
//	}
//
//	p := intrusive.Make(func(t *Texture) { t.id = 7 })
//	q := p.Clone() // count 2
//	q.Reset()      // count 1
//	p.Reset()      // destroyed
//
// By default the object is destroyed with alloc.Delete on alloc.Default().
// Objects implementing Destroyer take over their own destruction.
//
// The embedded count saturates at zero. Releasing an object whose count is
// already zero does not destroy it again.
package intrusive
