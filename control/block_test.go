package control

import (
	"testing"

	"github.com/wippyai/ownership"
	"github.com/wippyai/ownership/alloc"
)

type payload struct {
	id    int
	drops *int
}

func (p *payload) Drop() {
	if p.drops != nil {
		*p.drops++
	}
}

type recorder struct {
	events []alloc.Event
}

func (r *recorder) OnAllocEvent(e alloc.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) deallocations() []ownership.Kind {
	var kinds []ownership.Kind
	for _, e := range r.events {
		if e.Type == alloc.EventDeallocated {
			kinds = append(kinds, e.Kind)
		}
	}
	return kinds
}

func newPointerBlock(t *testing.T, tr *alloc.Tracker, deletes *int) (*payload, *Block) {
	t.Helper()
	p := alloc.New[payload](tr)
	p.id = 42
	b := NewPointer(tr, p, func(p *payload) {
		*deletes++
		if err := alloc.Delete(tr, p); err != nil {
			t.Errorf("delete payload: %v", err)
		}
	})
	return p, b
}

func TestPointerOwning_Lifecycle(t *testing.T) {
	tr := alloc.NewTracker(nil)
	rec := &recorder{}
	tr.Subscribe(rec)

	deletes := 0
	_, b := newPointerBlock(t, tr, &deletes)

	if b.Strategy() != PointerOwning {
		t.Fatalf("Strategy() = %s", b.Strategy())
	}
	if b.GetStrong() != 1 || b.GetWeak() != 0 || b.State() != Live {
		t.Fatalf("new block: strong=%d weak=%d state=%s", b.GetStrong(), b.GetWeak(), b.State())
	}

	b.IncrementStrong()
	b.IncrementWeak()
	b.DecrementStrong()
	if deletes != 0 {
		t.Fatal("payload destroyed while a strong reference remains")
	}

	b.DecrementStrong()
	if deletes != 1 {
		t.Fatalf("deleter ran %d times, want 1", deletes)
	}
	if b.State() != WeakOnly {
		t.Fatalf("State() = %s, want weak-only", b.State())
	}
	if !tr.IsLive(b) {
		t.Fatal("block released while a weak reference remains")
	}

	b.DecrementWeak()
	if b.State() != Dead {
		t.Fatalf("State() = %s, want dead", b.State())
	}
	if tr.IsLive(b) {
		t.Fatal("block not released at dead")
	}

	got := rec.deallocations()
	if len(got) != 2 || got[0] != ownership.KindObject || got[1] != ownership.KindBlock {
		t.Fatalf("deallocation order = %v, want [object block]", got)
	}
	if err := tr.Leaks(); err != nil {
		t.Fatal(err)
	}
}

func TestPointerOwning_NoWeakReleasesImmediately(t *testing.T) {
	tr := alloc.NewTracker(nil)
	deletes := 0
	_, b := newPointerBlock(t, tr, &deletes)

	b.DecrementStrong()
	if deletes != 1 {
		t.Fatalf("deleter ran %d times, want 1", deletes)
	}
	if b.State() != Dead || tr.IsLive(b) {
		t.Fatal("block should be released with the last strong reference when no weak remain")
	}
	if err := tr.Leaks(); err != nil {
		t.Fatal(err)
	}
}

func TestEmplacedOwning_Lifecycle(t *testing.T) {
	tr := alloc.NewTracker(nil)
	rec := &recorder{}
	tr.Subscribe(rec)

	drops := 0
	finalized := 0
	v, b := NewEmplaced(tr, func(p *payload) { finalized++ })
	v.id = 9
	v.drops = &drops

	if b.Strategy() != EmplacedOwning {
		t.Fatalf("Strategy() = %s", b.Strategy())
	}
	if tr.Live() != 1 {
		t.Fatalf("emplaced group should be one allocation, got %d", tr.Live())
	}

	b.IncrementWeak()
	b.DecrementStrong()

	if drops != 1 || finalized != 1 {
		t.Fatalf("drops=%d finalized=%d, want 1/1", drops, finalized)
	}
	if v.id != 0 {
		t.Fatal("payload not destroyed in place")
	}
	if tr.Live() != 1 {
		t.Fatal("combined storage released while a weak reference remains")
	}

	b.DecrementWeak()
	if tr.Live() != 0 {
		t.Fatal("combined storage not released at dead")
	}
	got := rec.deallocations()
	if len(got) != 1 || got[0] != ownership.KindCombined {
		t.Fatalf("deallocations = %v, want [combined]", got)
	}
}

func TestDecrementStrong_PayloadDropsOwnWeak(t *testing.T) {
	tr := alloc.NewTracker(nil)

	var b *Block
	p := alloc.New[payload](tr)
	b = NewPointer(tr, p, func(p *payload) {
		// the payload held the only weak reference to its own group
		b.DecrementWeak()
		if !tr.IsLive(b) {
			t.Error("block released while its payload is being destroyed")
		}
		_ = alloc.Delete(tr, p)
	})
	b.IncrementWeak()

	b.DecrementStrong()

	if b.State() != Dead {
		t.Fatalf("State() = %s, want dead", b.State())
	}
	if tr.IsLive(b) {
		t.Fatal("block leaked")
	}
	if err := tr.Leaks(); err != nil {
		t.Fatal(err)
	}
}

func TestTryIncrementStrong(t *testing.T) {
	tr := alloc.NewTracker(nil)
	deletes := 0
	_, b := newPointerBlock(t, tr, &deletes)
	b.IncrementWeak()

	if !b.TryIncrementStrong() {
		t.Fatal("promotion should succeed while live")
	}
	b.DecrementStrong()
	b.DecrementStrong()

	if b.TryIncrementStrong() {
		t.Fatal("promotion should fail once the payload is destroyed")
	}
	if b.GetStrong() != 0 {
		t.Fatal("failed promotion must not change the count")
	}
	b.DecrementWeak()
}

func TestDestroyIdempotent(t *testing.T) {
	tr := alloc.NewTracker(nil)
	deletes := 0
	_, b := newPointerBlock(t, tr, &deletes)

	b.DecrementStrong()
	b.DestroyObject()
	b.DestroyBlock()

	if deletes != 1 {
		t.Fatalf("deleter ran %d times, want 1", deletes)
	}
	if tr.Stats().Total[ownership.KindBlock] != 1 || tr.Stats().Live[ownership.KindBlock] != 0 {
		t.Fatalf("unexpected block stats: %+v", tr.Stats())
	}
}

func TestUnderflowPanics(t *testing.T) {
	tests := []struct {
		name string
		run  func(b *Block)
	}{
		{"strong underflow", func(b *Block) { b.DecrementStrong(); b.DecrementStrong() }},
		{"weak underflow", func(b *Block) { b.DecrementWeak() }},
		{"resurrect", func(b *Block) { b.IncrementWeak(); b.DecrementStrong(); b.IncrementStrong() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deletes := 0
			_, b := newPointerBlock(t, alloc.NewTracker(nil), &deletes)
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.run(b)
		})
	}
}

func TestStrings(t *testing.T) {
	if PointerOwning.String() != "pointer" || EmplacedOwning.String() != "emplaced" || Strategy(0).String() != "unknown" {
		t.Error("unexpected Strategy strings")
	}
	if Live.String() != "live" || WeakOnly.String() != "weak-only" || Dead.String() != "dead" {
		t.Error("unexpected State strings")
	}
}
