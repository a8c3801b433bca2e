package pair

import (
	"testing"
	"unsafe"
)

type empty struct{}

type stateful struct {
	calls *int
}

func TestCompressed_EmptyPolicyAddsNothing(t *testing.T) {
	word := unsafe.Sizeof(uintptr(0))

	tests := []struct {
		name string
		size uintptr
		want uintptr
	}{
		{"pointer with empty policy", unsafe.Sizeof(Compressed[*int, empty]{}), word},
		{"pointer with struct{} policy", unsafe.Sizeof(Compressed[*int, struct{}]{}), word},
		{"pointer with stateful policy", unsafe.Sizeof(Compressed[*int, stateful]{}), 2 * word},
		{"slice with empty policy", unsafe.Sizeof(Compressed[[]int, empty]{}), 3 * word},
		{"both empty", unsafe.Sizeof(Compressed[empty, empty]{}), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.size != tt.want {
				t.Fatalf("size = %d, want %d", tt.size, tt.want)
			}
		})
	}
}

func TestCompressed_Accessors(t *testing.T) {
	calls := 0
	x, y := 1, 2

	c := Make(&x, stateful{calls: &calls})
	if c.Value() != &x {
		t.Fatal("Value() mismatch")
	}
	if c.Policy().calls != &calls {
		t.Fatal("Policy() mismatch")
	}

	old := c.SetValue(&y)
	if old != &x || c.Value() != &y {
		t.Fatal("SetValue did not replace the value")
	}

	*c.ValuePtr() = nil
	if c.Value() != nil {
		t.Fatal("ValuePtr does not alias the slot")
	}

	c.PolicyPtr().calls = nil
	if c.Policy().calls != nil {
		t.Fatal("PolicyPtr does not alias the slot")
	}

	c.SetPolicy(stateful{calls: &calls})
	if c.Policy().calls != &calls {
		t.Fatal("SetPolicy did not replace the policy")
	}
}

func TestCompressed_Swap(t *testing.T) {
	a, b := 1, 2
	ca, cb := 0, 0

	left := Make(&a, stateful{calls: &ca})
	right := Make(&b, stateful{calls: &cb})
	left.Swap(&right)

	if left.Value() != &b || left.Policy().calls != &cb {
		t.Fatal("left did not receive right's slots")
	}
	if right.Value() != &a || right.Policy().calls != &ca {
		t.Fatal("right did not receive left's slots")
	}
}
