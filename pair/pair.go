// Package pair provides two-slot storage that costs nothing for an empty
// policy.
//
// Exclusive handles store a pointer next to a deleter. Most deleters carry no
// state, and a handle with a stateless deleter must be exactly one pointer
// wide. The Go compiler pads a trailing zero-size field so that taking its
// address cannot point past the struct; a leading one is free. Compressed
// therefore lays the policy out first:
//
//	unsafe.Sizeof(pair.Compressed[*T, struct{}]{}) == unsafe.Sizeof(uintptr(0))
//
// A stateful policy is stored inline next to the value.
package pair

// Compressed holds a value and the policy object that governs it.
type Compressed[V, P any] struct {
	policy P
	value  V
}

// Make returns a pair holding v and p.
func Make[V, P any](v V, p P) Compressed[V, P] {
	return Compressed[V, P]{policy: p, value: v}
}

// Value returns the value slot.
func (c *Compressed[V, P]) Value() V {
	return c.value
}

// Policy returns the policy slot.
func (c *Compressed[V, P]) Policy() P {
	return c.policy
}

// ValuePtr returns the address of the value slot.
func (c *Compressed[V, P]) ValuePtr() *V {
	return &c.value
}

// PolicyPtr returns the address of the policy slot.
func (c *Compressed[V, P]) PolicyPtr() *P {
	return &c.policy
}

// SetValue replaces the value slot and returns the previous value.
func (c *Compressed[V, P]) SetValue(v V) V {
	old := c.value
	c.value = v
	return old
}

// SetPolicy replaces the policy slot.
func (c *Compressed[V, P]) SetPolicy(p P) {
	c.policy = p
}

// Swap exchanges both slots with other.
func (c *Compressed[V, P]) Swap(other *Compressed[V, P]) {
	c.value, other.value = other.value, c.value
	c.policy, other.policy = other.policy, c.policy
}
