// Package errors provides structured error types for the ownership library.
//
// Errors are categorized by Phase (which operation failed) and Kind (error
// category). The Error type carries the payload's Go type, the offending value
// and a cause chain.
//
// Only two failures are recoverable and both happen while constructing a
// handle:
//
//	errors.ErrOwnerExpired // promoting a weak handle whose owners are gone
//	errors.ErrNoOwner      // asking a payload for itself before it was wrapped
//
// Use errors.Is to test for them; matching compares Phase and Kind, so errors
// built with extra detail still match the sentinels:
//
//	p, err := shared.FromWeak(&w)
//	if errors.Is(err, errors.ErrOwnerExpired) {
//		...
//	}
//
// Allocators report misuse (double free, unknown pointer, kind mismatch) with
// the same type. Everything else, such as dereferencing an empty handle or
// indexing past the end of an array handle, is a contract violation and is
// not detected.
package errors
