// Package unique provides exclusive ownership handles with a pluggable
// deleter.
//
// A Ptr owns one object and an Array owns one array allocation. Neither can
// be shared: ownership moves between handles with Move and MoveFrom, and the
// deleter runs when the handle is reset. Handles embed a noCopy marker so that
// go vet reports accidental copies.
//
// The deleter is stored next to the pointer in a pair.Compressed, so a
// stateless deleter such as Default adds no size to the handle:
//
//	p := unique.New(alloc.New[Conn](alloc.Default()))
//	defer p.Reset()
//
//	var (
//		calls int
//		d     = unique.Func[Conn](func(c *Conn) { calls++ })
//	)
//	q := unique.NewWithDeleter(&Conn{}, d)
//	q.Reset() // calls == 1
//
// Out of range indexing on an Array and dereferencing an empty handle are
// caller errors; the Go runtime panics.
package unique
