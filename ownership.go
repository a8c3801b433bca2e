package ownership

// Kind identifies the shape of an allocation. A pointer must be deallocated
// with the same kind it was allocated with.
type Kind uint8

const (
	KindObject   Kind = iota + 1 // single value
	KindArray                    // contiguous run of values
	KindBlock                    // control block for a separately allocated payload
	KindCombined                 // control block and payload in one allocation
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindBlock:
		return "block"
	case KindCombined:
		return "combined"
	default:
		return "unknown"
	}
}

// Allocator is the allocate/deallocate capability ownership handles consume.
// Every Allocate must be matched by exactly one Deallocate of the same kind.
type Allocator interface {
	// Allocate records a freshly allocated pointer.
	Allocate(ptr any, kind Kind)

	// Deallocate hands a pointer back. Implementations report misuse
	// (double free, unknown pointer, kind mismatch) as an error.
	Deallocate(ptr any, kind Kind) error
}

// Dropper is optionally implemented by payloads that need cleanup when they
// are destroyed.
type Dropper interface {
	Drop()
}
