package counter

import "testing"

func TestSimple(t *testing.T) {
	var c Simple

	if c.RefCount() != 0 {
		t.Fatalf("zero value count = %d", c.RefCount())
	}
	if got := c.IncRef(); got != 1 {
		t.Fatalf("IncRef = %d, want 1", got)
	}
	if got := c.IncRef(); got != 2 {
		t.Fatalf("IncRef = %d, want 2", got)
	}
	if got := c.DecRef(); got != 1 {
		t.Fatalf("DecRef = %d, want 1", got)
	}
	if got := c.DecRef(); got != 0 {
		t.Fatalf("DecRef = %d, want 0", got)
	}
}

func TestSimple_Saturates(t *testing.T) {
	var c Simple
	for i := 0; i < 3; i++ {
		if got := c.DecRef(); got != 0 {
			t.Fatalf("DecRef at zero = %d, want 0", got)
		}
	}
	if c.IncRef() != 1 {
		t.Fatal("counter should recover from saturated decrements")
	}
}

func TestSimple_ImplementsCounter(t *testing.T) {
	var _ Counter = (*Simple)(nil)
}
