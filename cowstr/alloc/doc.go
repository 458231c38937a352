// Package alloc provides the memory-management boundary for copy-on-write
// string buffers: the Manager contract, the reference-counted Buffer handle,
// and a set of reference Manager implementations.
//
// # Overview
//
// Every string value owns exactly one reference to a Buffer. Buffers are
// shared between string values by reference counting and are forked (copied)
// before mutation, so the cost of copying a string is a single atomic
// increment until somebody writes to it.
//
// # Manager Interface
//
// The core abstraction is the Manager interface:
//
//   - Allocate(n): produce a buffer with capacity for n code units plus a
//     terminator slot
//   - Free(b): release a buffer's backing storage once it is unreachable
//   - Reallocate(b, n): grow a buffer in place or by relocation, preserving
//     content
//   - Nil(): the manager's shared empty-buffer singleton
//   - Clone(): a handle for future allocations, compared by identity
//
// Managers are generic over the code-unit width, so the same implementation
// serves both narrow (byte) and wide (uint16) strings.
//
// # Implementations
//
// Heap: stateless Go-runtime-backed manager
//
//   - Allocation via make, Free is a no-op (garbage collected)
//   - Clone returns the same instance
//
// Pool: size-class-tiered recycling manager
//
//   - Segregated sync.Pool per size class
//   - Freed buffers return their storage for reuse
//
// Arena: bump-pointer manager over a fixed anonymous mapping
//
//   - O(1) allocation, Free is a no-op
//   - Fixed capacity, so exhaustion genuinely returns ErrNoMemory
//   - Close releases the mapping
//
// Limited and Counting wrap another manager to impose a unit budget or to
// count manager calls; both are used heavily in tests of the copy-on-write
// machinery.
//
// # Buffer States
//
// A buffer is Unshared (one holder), Shared (several holders), Locked
// (exclusive while a raw pointer is outstanding), or Freed. AddRef and
// Release use an atomic counter, so sharing immutable buffers across
// goroutines is safe; the lock depth is a plain counter because a locked
// buffer has exactly one holder by construction.
//
// # Thread Safety
//
// Manager implementations in this package are not thread-safe beyond the
// atomic reference count on Buffer. Callers must not mutate one buffer from
// several goroutines; concurrent reads of a shared buffer need no
// coordination.
package alloc
