package unique

import (
	"testing"

	"github.com/wippyai/ownership/alloc"
)

func TestNewArray(t *testing.T) {
	tr := useTracker(t)
	drops := 0

	a := NewArray[conn](4)
	if a.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", a.Len())
	}
	for i := 0; i < a.Len(); i++ {
		a.At(i).id = i
		a.At(i).drops = &drops
	}
	if a.Get()[3].id != 3 {
		t.Fatal("At should address the owned elements")
	}
	if tr.Live() != 1 {
		t.Fatalf("array should be one allocation, Live() = %d", tr.Live())
	}

	a.Reset()
	if drops != 4 {
		t.Fatalf("Drop called %d times, want 4", drops)
	}
	if !a.IsNil() || a.Len() != 0 {
		t.Fatal("handle should be empty after Reset")
	}
}

func TestNewArray_Empty(t *testing.T) {
	tr := useTracker(t)

	a := NewArray[conn](0)
	if !a.IsNil() {
		t.Fatal("zero-length array should be empty")
	}
	a.Reset()
	if tr.Stats().LiveTotal() != 0 {
		t.Fatal("zero-length array must not allocate")
	}
}

func TestArray_ResetTo(t *testing.T) {
	var deleted [][]conn
	d := ArrayFunc[conn](func(s []conn) { deleted = append(deleted, s) })

	first := make([]conn, 2)
	second := make([]conn, 3)

	a := WrapArrayWithDeleter(first, d)
	a.ResetTo(second)
	if len(deleted) != 1 || &deleted[0][0] != &first[0] {
		t.Fatal("ResetTo should delete the previous array once")
	}

	a.ResetTo(second[:2])
	if len(deleted) != 1 {
		t.Fatal("ResetTo a view of the held array must not delete it")
	}

	a.Reset()
	if len(deleted) != 2 {
		t.Fatalf("deleter called %d times, want 2", len(deleted))
	}
}

func TestArray_MoveAndRelease(t *testing.T) {
	calls := 0
	d := ArrayFunc[conn](func([]conn) { calls++ })

	a := WrapArrayWithDeleter(make([]conn, 2), d)
	b := a.Move()
	if !a.IsNil() || b.Len() != 2 {
		t.Fatal("Move should transfer the elements")
	}

	var c Array[conn, ArrayFunc[conn]]
	c.MoveFrom(&b)
	if !b.IsNil() || c.Len() != 2 {
		t.Fatal("MoveFrom should transfer the elements")
	}

	s := c.Release()
	if len(s) != 2 || !c.IsNil() {
		t.Fatal("Release should hand back the elements")
	}
	c.Reset()
	if calls != 0 {
		t.Fatalf("deleter called %d times, want 0", calls)
	}
}

func TestArray_WrapDefault(t *testing.T) {
	tr := useTracker(t)

	a := WrapArray(alloc.NewArray[conn](tr, 3))
	b := NewArray[conn](1)
	a.Swap(&b)
	if a.Len() != 1 || b.Len() != 3 {
		t.Fatal("Swap did not exchange arrays")
	}
	a.Reset()
	b.Reset()
}

func TestArray_AtOutOfRangePanics(t *testing.T) {
	a := WrapArrayWithDeleter(make([]conn, 1), ArrayFunc[conn](func([]conn) {}))
	defer func() {
		if recover() == nil {
			t.Fatal("expected out of range panic")
		}
	}()
	a.At(1)
}
