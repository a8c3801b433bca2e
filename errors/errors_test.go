package errors

import (
	"errors"
	"strings"
	"testing"
)

type testKind string

func (k testKind) String() string { return string(k) }

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhasePromote,
				Kind:   KindExpired,
				GoType: "*main.Session",
				Detail: "owner expired",
			},
			contains: []string{"[promote]", "owner_expired", "*main.Session", "owner expired"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDeallocate,
				Kind:  KindDoubleFree,
			},
			contains: []string{"[deallocate]", "double_free"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseArena,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("grow refused"),
			},
			contains: []string{"[arena]", "allocation", "memory full", "caused by", "grow refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NoOwner("*main.Node", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_IsSentinel(t *testing.T) {
	if !errors.Is(OwnerExpired("*main.Node"), ErrOwnerExpired) {
		t.Error("OwnerExpired should match ErrOwnerExpired")
	}
	if !errors.Is(NoOwner("*main.Node", nil), ErrNoOwner) {
		t.Error("NoOwner should match ErrNoOwner")
	}
	if errors.Is(OwnerExpired("*main.Node"), ErrNoOwner) {
		t.Error("OwnerExpired should not match ErrNoOwner")
	}
	if errors.Is(errors.New("plain"), ErrOwnerExpired) {
		t.Error("plain errors should not match")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseConfig, KindInvalidInput).
		GoType("alloc.Config").
		Value("loud").
		Detail("unknown log level %q", "loud").
		Build()

	if err.Phase != PhaseConfig || err.Kind != KindInvalidInput {
		t.Fatalf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Value != "loud" {
		t.Errorf("Value = %v", err.Value)
	}
	if !strings.Contains(err.Error(), `unknown log level "loud"`) {
		t.Errorf("Detail not formatted: %s", err.Error())
	}
}

func TestAllocatorErrors(t *testing.T) {
	p := new(int)

	tests := []struct {
		name string
		err  *Error
		kind Kind
		text string
	}{
		{"double free", DoubleFree(p, testKind("object")), KindDoubleFree, "deallocated twice"},
		{"unknown", UnknownPointer(p, testKind("array")), KindUnknownPointer, "never allocated"},
		{"mismatch", Mismatch(p, testKind("array"), testKind("object")), KindMismatch, "allocated as array, deallocated as object"},
		{"leak", Leak(p, testKind("block")), KindLeak, "never deallocated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if tt.err.GoType != "*int" {
				t.Errorf("GoType = %q, want *int", tt.err.GoType)
			}
			if !strings.Contains(tt.err.Error(), tt.text) {
				t.Errorf("%q does not contain %q", tt.err.Error(), tt.text)
			}
		})
	}
}

func TestOutOfBounds(t *testing.T) {
	err := OutOfBounds(PhaseArena, 60, 8, 64)
	if !strings.Contains(err.Error(), "[60, 68)") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
