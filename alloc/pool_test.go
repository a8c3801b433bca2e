package alloc

import (
	"testing"
)

type buffer struct {
	data  []byte
	drops *int
}

func (b *buffer) Drop() {
	if b.drops != nil {
		*b.drops++
	}
}

func TestPool_GetPut(t *testing.T) {
	tr := NewTracker(nil)
	pool := NewPool(tr, func() *buffer { return &buffer{data: make([]byte, 0, 64)} })

	drops := 0
	b := pool.Get()
	b.drops = &drops
	if !tr.IsLive(b) {
		t.Fatal("pooled payload should be tracked while in use")
	}

	if err := pool.Put(b); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if drops != 1 {
		t.Fatalf("Drop called %d times, want 1", drops)
	}
	if tr.IsLive(b) {
		t.Fatal("payload should not be live after Put")
	}
	if err := pool.Put(b); err == nil {
		t.Fatal("second Put of the same payload should fail")
	}
}

func TestPool_NilConstructor(t *testing.T) {
	pool := NewPool[buffer](nil, nil)
	b := pool.Get()
	if b == nil {
		t.Fatal("Get returned nil")
	}
	if err := pool.Put(b); err != nil {
		t.Fatal(err)
	}
	if err := pool.Put(nil); err != nil {
		t.Fatal(err)
	}
}

func TestPoolDeleter(t *testing.T) {
	tr := NewTracker(nil)
	pool := NewPool[buffer](tr, nil)

	b := pool.Get()
	PoolDeleter[buffer]{Pool: pool}.Delete(b)

	if err := tr.Leaks(); err != nil {
		t.Fatal(err)
	}
}
