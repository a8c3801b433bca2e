// Package control implements the bookkeeping shared by a group of shared and
// weak handles.
//
// A Block counts strong references (handles that keep the payload alive) and
// weak references (handles that only observe it), and knows how to destroy
// the payload and release itself. It moves through three states:
//
//	Live      strong > 0            payload alive, block alive
//	WeakOnly  strong == 0, weak > 0 payload destroyed, block alive
//	Dead      strong == 0, weak == 0 payload destroyed, block released
//
// The payload is destroyed exactly once, when the last strong reference goes
// away. The block is released exactly once, when both counts reach zero, and
// never before the payload is destroyed.
//
// # Strategies
//
// A block is created with one of two strategies:
//
//	PointerOwning   payload allocated separately; destroying the payload runs
//	                its deleter, releasing the block deallocates the block
//	EmplacedOwning  payload stored inside the block's own allocation;
//	                destroying the payload runs its destructor in place,
//	                releasing the block deallocates the combined storage
//
// # Misuse
//
// Counts never go below zero. An underflow, or an attempt to add a strong
// reference to a group whose payload is already destroyed, means some handle
// is counted twice; the block panics instead of freeing twice.
//
// Blocks are not synchronized.
package control
