package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which operation produced the error
type Phase string

const (
	PhasePromote    Phase = "promote"    // weak to shared promotion
	PhaseSelf       Phase = "self"       // self observation accessors
	PhaseAllocate   Phase = "allocate"   // allocator bookkeeping on allocation
	PhaseDeallocate Phase = "deallocate" // allocator bookkeeping on deallocation
	PhaseArena      Phase = "arena"      // linear memory arena
	PhaseConfig     Phase = "config"     // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindExpired        Kind = "owner_expired"
	KindNoOwner        Kind = "no_owner"
	KindDoubleFree     Kind = "double_free"
	KindUnknownPointer Kind = "unknown_pointer"
	KindMismatch       Kind = "kind_mismatch"
	KindLeak           Kind = "leak"
	KindAllocation     Kind = "allocation"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindInvalidInput   Kind = "invalid_input"
	KindNilPointer     Kind = "nil_pointer"
)

var (
	// ErrOwnerExpired is returned when a weak handle is promoted after the
	// last strong handle of its group went away.
	ErrOwnerExpired = &Error{Phase: PhasePromote, Kind: KindExpired, Detail: "owner expired"}

	// ErrNoOwner is returned when a payload asks for a shared handle to itself
	// before any shared handle took ownership of it.
	ErrNoOwner = &Error{Phase: PhaseSelf, Kind: KindNoOwner, Detail: "no owning handle"}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OwnerExpired creates a promotion failure for a payload of the given type
func OwnerExpired(goType string) *Error {
	return &Error{
		Phase:  PhasePromote,
		Kind:   KindExpired,
		GoType: goType,
		Detail: "owner expired",
	}
}

// NoOwner creates a self observation failure for a payload of the given type
func NoOwner(goType string, cause error) *Error {
	return &Error{
		Phase:  PhaseSelf,
		Kind:   KindNoOwner,
		GoType: goType,
		Detail: "no owning handle",
		Cause:  cause,
	}
}

// DoubleFree creates a double deallocation error
func DoubleFree(ptr any, kind fmt.Stringer) *Error {
	return &Error{
		Phase:  PhaseDeallocate,
		Kind:   KindDoubleFree,
		GoType: fmt.Sprintf("%T", ptr),
		Detail: fmt.Sprintf("%s %p deallocated twice", kind, ptr),
		Value:  ptr,
	}
}

// UnknownPointer creates an error for deallocating a pointer that was never allocated
func UnknownPointer(ptr any, kind fmt.Stringer) *Error {
	return &Error{
		Phase:  PhaseDeallocate,
		Kind:   KindUnknownPointer,
		GoType: fmt.Sprintf("%T", ptr),
		Detail: fmt.Sprintf("%s %p was never allocated", kind, ptr),
		Value:  ptr,
	}
}

// Mismatch creates an error for deallocating with a different kind than allocated
func Mismatch(ptr any, allocated, deallocated fmt.Stringer) *Error {
	return &Error{
		Phase:  PhaseDeallocate,
		Kind:   KindMismatch,
		GoType: fmt.Sprintf("%T", ptr),
		Detail: fmt.Sprintf("allocated as %s, deallocated as %s", allocated, deallocated),
		Value:  ptr,
	}
}

// Leak creates an error for a pointer still live when leaks are checked
func Leak(ptr any, kind fmt.Stringer) *Error {
	return &Error{
		Phase:  PhaseDeallocate,
		Kind:   KindLeak,
		GoType: fmt.Sprintf("%T", ptr),
		Detail: fmt.Sprintf("%s %p never deallocated", kind, ptr),
		Value:  ptr,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, offset, length, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("range [%d, %d) out of bounds (size %d)", offset, offset+length, size),
		Value:  offset,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
