package alloc

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/ownership"
	"github.com/wippyai/ownership/errors"
)

// EventType identifies a tracker lifecycle notification.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventDeallocated
	EventMisuse
)

func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventDeallocated:
		return "deallocated"
	case EventMisuse:
		return "misuse"
	default:
		return "unknown"
	}
}

// Event represents one allocator operation observed by a Tracker.
type Event struct {
	Ptr  any
	Err  error
	Kind ownership.Kind
	Type EventType
}

// Observer receives notifications about tracked allocations.
type Observer interface {
	OnAllocEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnAllocEvent calls f(e).
func (f ObserverFunc) OnAllocEvent(e Event) {
	f(e)
}

// TrackerConfig holds configuration for tracker creation
type TrackerConfig struct {
	// Logger receives misuse reports. Defaults to the package logger.
	Logger *zap.Logger

	// PanicOnMisuse turns every reported misuse into a panic after it is
	// logged and published.
	PanicOnMisuse bool

	// Quarantine is how many recently freed pointers are remembered for
	// double free detection. Older frees are forgotten, so a repeated free of
	// them is reported as an unknown pointer. 0 means DefaultQuarantine.
	Quarantine int
}

// DefaultQuarantine is the number of freed pointers a Tracker remembers when
// none is configured.
const DefaultQuarantine = 1024

type freedRecord struct {
	kind ownership.Kind
	seq  uint64
}

type quarantined struct {
	ptr any
	seq uint64
}

type record struct {
	kind  ownership.Kind
	count int // zero-size values share one address
	seq   uint64
}

// Tracker is a checking allocator. It remembers every live pointer and the
// kind it was allocated with, so misuse is reported instead of silently
// corrupting bookkeeping.
type Tracker struct {
	heap      Heap
	live      map[any]*record
	freed     map[any]freedRecord
	ring      []quarantined // bounded FIFO of freed pointers
	ringNext  int
	observers []Observer
	log       *zap.Logger
	seq       uint64
	mu        sync.Mutex
	obsMu     sync.RWMutex
	panicking bool
}

// NewTracker creates a tracker. A nil cfg uses defaults.
func NewTracker(cfg *TrackerConfig) *Tracker {
	t := &Tracker{
		live:  make(map[any]*record),
		freed: make(map[any]freedRecord),
	}
	size := DefaultQuarantine
	if cfg != nil {
		t.log = cfg.Logger
		t.panicking = cfg.PanicOnMisuse
		if cfg.Quarantine > 0 {
			size = cfg.Quarantine
		}
	}
	t.ring = make([]quarantined, size)
	return t
}

// Allocate records a live pointer.
func (t *Tracker) Allocate(ptr any, kind ownership.Kind) {
	t.mu.Lock()
	t.seq++
	if rec, ok := t.live[ptr]; ok {
		rec.count++
	} else {
		t.live[ptr] = &record{kind: kind, count: 1, seq: t.seq}
	}
	delete(t.freed, ptr)
	t.mu.Unlock()

	t.heap.Allocate(ptr, kind)
	t.logger().Debug("allocate", zap.Stringer("kind", kind), zap.String("type", typeName(ptr)))
	t.notify(Event{Type: EventAllocated, Kind: kind, Ptr: ptr})
}

// Deallocate releases a live pointer. Double frees, unknown pointers and
// kind mismatches leave the bookkeeping untouched and are returned as errors.
func (t *Tracker) Deallocate(ptr any, kind ownership.Kind) error {
	t.mu.Lock()
	var err error
	rec, ok := t.live[ptr]
	switch {
	case !ok:
		if _, was := t.freed[ptr]; was {
			err = errors.DoubleFree(ptr, kind)
		} else {
			err = errors.UnknownPointer(ptr, kind)
		}
	case rec.kind != kind:
		err = errors.Mismatch(ptr, rec.kind, kind)
	default:
		rec.count--
		if rec.count == 0 {
			delete(t.live, ptr)
			t.quarantine(ptr, kind)
		}
	}
	t.mu.Unlock()

	if err != nil {
		t.misuse(ptr, kind, err)
		return err
	}

	t.heap.Deallocate(ptr, kind)
	t.logger().Debug("deallocate", zap.Stringer("kind", kind), zap.String("type", typeName(ptr)))
	t.notify(Event{Type: EventDeallocated, Kind: kind, Ptr: ptr})
	return nil
}

// IsLive reports whether ptr is currently allocated.
func (t *Tracker) IsLive(ptr any) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.live[ptr]
	return ok
}

// Live returns the number of live allocations.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, rec := range t.live {
		n += rec.count
	}
	return n
}

// Stats returns allocation counters per kind.
func (t *Tracker) Stats() Stats {
	return t.heap.Stats()
}

// Leaks returns one error per live allocation, oldest first, or nil.
func (t *Tracker) Leaks() error {
	type leak struct {
		ptr any
		rec record
	}

	t.mu.Lock()
	leaks := make([]leak, 0, len(t.live))
	for ptr, rec := range t.live {
		leaks = append(leaks, leak{ptr: ptr, rec: *rec})
	}
	t.mu.Unlock()

	sort.Slice(leaks, func(i, j int) bool { return leaks[i].rec.seq < leaks[j].rec.seq })

	var err error
	for _, l := range leaks {
		err = multierr.Append(err, errors.Leak(l.ptr, l.rec.kind))
	}
	return err
}

// Subscribe adds an observer for allocation events.
func (t *Tracker) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Tracker) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// quarantine remembers ptr as freed, evicting the oldest entry when the ring
// is full. Caller holds t.mu.
func (t *Tracker) quarantine(ptr any, kind ownership.Kind) {
	slot := &t.ring[t.ringNext]
	if slot.ptr != nil {
		// The slot's pointer may have been reallocated and freed again since;
		// only the matching entry is dropped.
		if f, ok := t.freed[slot.ptr]; ok && f.seq == slot.seq {
			delete(t.freed, slot.ptr)
		}
	}
	t.seq++
	*slot = quarantined{ptr: ptr, seq: t.seq}
	t.freed[ptr] = freedRecord{kind: kind, seq: t.seq}
	t.ringNext = (t.ringNext + 1) % len(t.ring)
}

// Quarantined returns the number of freed pointers currently remembered.
func (t *Tracker) Quarantined() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.freed)
}

func (t *Tracker) misuse(ptr any, kind ownership.Kind, err error) {
	t.logger().Error("allocator misuse", zap.Stringer("kind", kind), zap.String("type", typeName(ptr)), zap.Error(err))
	t.notify(Event{Type: EventMisuse, Kind: kind, Ptr: ptr, Err: err})
	if t.panicking {
		panic(err)
	}
}

func (t *Tracker) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnAllocEvent(e)
	}
}

func (t *Tracker) logger() *zap.Logger {
	if t.log != nil {
		return t.log
	}
	return Logger()
}

func typeName(ptr any) string {
	return fmt.Sprintf("%T", ptr)
}
