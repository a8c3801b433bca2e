// Package counter provides the reference counter embedded in intrusively
// counted objects.
package counter

// Counter is the capability intrusive handles require from an object.
type Counter interface {
	// IncRef adds a reference and returns the new count.
	IncRef() uint

	// DecRef removes a reference and returns the new count.
	DecRef() uint

	// RefCount returns the current count.
	RefCount() uint
}

// Simple is a plain, unsynchronized counter. Decrementing at zero is a no-op.
// The zero value is ready to use.
type Simple struct {
	count uint
}

// IncRef adds a reference and returns the new count.
func (c *Simple) IncRef() uint {
	c.count++
	return c.count
}

// DecRef removes a reference and returns the new count. At zero it stays at
// zero.
func (c *Simple) DecRef() uint {
	if c.count == 0 {
		return 0
	}
	c.count--
	return c.count
}

// RefCount returns the current count.
func (c *Simple) RefCount() uint {
	return c.count
}
