// Package shared provides shared ownership handles with weak observation.
//
// A Ptr keeps its payload alive; a group of Ptrs shares one control block and
// the payload is destroyed when the last of them is reset. A Weak observes a
// group without keeping the payload alive and can be promoted back to a Ptr
// while the payload exists.
//
// # Construction
//
//	p := shared.Make(func(s *Session) { s.id = 7 }) // one allocation
//	q := shared.New(alloc.New[Session](alloc.Default()))
//	r := shared.NewWithDeleter(conn, func(c *Conn) { c.Close() })
//
// Make places the payload and the control block in a single allocation and is
// the preferred form. New and NewWithDeleter adopt a pointer allocated
// elsewhere.
//
// # Handles Are Values
//
// Go has no destructors and no copy constructors, so the handle operations
// are explicit:
//
//	b := a.Clone()     // copy: UseCount()+1
//	c := a.Move()      // move: a becomes empty
//	d.Assign(&b)       // copy-assign
//	d.MoveFrom(&c)     // move-assign
//	b.Reset()          // destroy this handle
//
// Copying a handle with plain assignment bypasses the count and is reported
// by go vet.
//
// # Aliasing
//
// Alias shares a group's lifetime while exposing another pointer, usually a
// field of the payload:
//
//	name := shared.Alias(&user, &user.Get().Name) // keeps user alive
//
// # Weak Handles
//
//	w := p.Weak()
//	if q := w.Lock(); !q.IsNil() { // empty once the payload is destroyed
//		defer q.Reset()
//	}
//	q, err := shared.FromWeak(&w) // errors.ErrOwnerExpired instead of empty
//
// # Self Observation
//
// A payload that embeds EnableSelf can obtain handles to itself once a Ptr
// owns it:
//
//	type Session struct {
//		shared.EnableSelf[Session]
//		id int
//	}
//
//	func (s *Session) Register(r *Registry) error {
//		self, err := s.SharedFromSelf() // errors.ErrNoOwner before wrapping
//		if err != nil {
//			return err
//		}
//		r.add(self.Move())
//		return nil
//	}
//
// Cycles of Ptrs are never collected. Break them with Weak.
//
// Handles are not synchronized.
package shared
