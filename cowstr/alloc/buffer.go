package alloc

import (
	"sync/atomic"

	"github.com/joshuapare/strkit/internal/buf"
)

// Buffer is the reference-counted handle for one character buffer: metadata
// and payload travel together, so no fixed memory layout is assumed.
//
// The payload always has room for one unit beyond the capacity, and a zero
// terminator is kept present at units[length] at all times.
//
// Shareability and exclusivity are tracked by two orthogonal fields: an
// atomic holder count and a lock depth. A buffer with locks > 0 is locked
// (exclusive, non-shareable, raw pointer outstanding); locking never touches
// the holder count, so "many releases on a locked buffer" can never be
// confused with "genuinely zero holders".
type Buffer[C CodeUnit] struct {
	mgr    Manager[C]
	refs   atomic.Int32
	length int
	units  []C // capacity+1 units; units[length] is the terminator

	// locks is the nested lock depth. Plain rather than atomic: a locked
	// buffer has exactly one holder, so there is nobody to race with.
	locks int32

	// immortal marks the per-manager nil singleton. It is never freed, never
	// reallocated, and reports itself as shared so every write path forks
	// away from it.
	immortal bool
}

// NewBuffer returns a fresh buffer with capacity for n code units plus the
// terminator slot, backed by the Go runtime, bound to m, with one holder.
func NewBuffer[C CodeUnit](m Manager[C], n int) (*Buffer[C], error) {
	total, ok := buf.AddOverflowSafe(n, 1)
	if n < 0 || !ok {
		return nil, ErrBadLength
	}
	return BufferFromUnits(m, make([]C, total))
}

// BufferFromUnits wraps caller-provided storage as a buffer bound to m. The
// storage must have at least one slot (the terminator); its first unit is
// zeroed so the empty-string invariant holds even for recycled memory. The
// buffer's capacity is len(units)-1.
func BufferFromUnits[C CodeUnit](m Manager[C], units []C) (*Buffer[C], error) {
	if len(units) < 1 {
		return nil, ErrBadLength
	}
	b := &Buffer[C]{mgr: m, units: units}
	b.units[0] = 0
	b.refs.Store(1)
	return b, nil
}

// NewNil returns an immortal zero-capacity buffer for use as a manager's
// empty-string singleton. Its manager handle is unset; the owning manager
// binds it exactly once with BindManager before first use.
func NewNil[C CodeUnit]() *Buffer[C] {
	b := &Buffer[C]{units: make([]C, 1), immortal: true}
	b.refs.Store(1)
	return b
}

// BindManager binds b to m. Valid exactly once, on a buffer created without
// a manager (the nil singleton).
func (b *Buffer[C]) BindManager(m Manager[C]) error {
	if b.mgr != nil {
		return ErrRebind
	}
	b.mgr = m
	return nil
}

// Manager returns the manager handle this buffer was produced by.
func (b *Buffer[C]) Manager() Manager[C] { return b.mgr }

// Len returns the logical length in code units, excluding the terminator.
func (b *Buffer[C]) Len() int { return b.length }

// Cap returns the capacity in code units, excluding the terminator slot.
func (b *Buffer[C]) Cap() int { return len(b.units) - 1 }

// Raw returns the full backing storage, capacity+1 units. The slot at
// Cap() exists only so a terminator can follow a full payload.
func (b *Buffer[C]) Raw() []C { return b.units }

// SetLength commits a logical length and writes the terminator at that
// offset. The length must not exceed the capacity.
func (b *Buffer[C]) SetLength(n int) error {
	if n < 0 || n > b.Cap() {
		return ErrBadLength
	}
	b.length = n
	b.units[n] = 0
	return nil
}

// IsShared reports whether mutating the payload in place could be observed
// by another holder. The immortal nil singleton always reports shared, which
// forces writers to fork instead of touching it.
func (b *Buffer[C]) IsShared() bool {
	return b.immortal || b.refs.Load() > 1
}

// IsLocked reports whether a raw pointer is outstanding.
func (b *Buffer[C]) IsLocked() bool { return b.locks > 0 }

// Refs returns the current holder count. Diagnostic: the value is stale the
// moment it is read when other goroutines share the buffer.
func (b *Buffer[C]) Refs() int32 { return b.refs.Load() }

// LockDepth returns the nested lock depth. Diagnostic.
func (b *Buffer[C]) LockDepth() int32 { return b.locks }

// AddRef registers an additional holder. Never valid on a locked buffer:
// sharing one requires forking a private copy first.
func (b *Buffer[C]) AddRef() error {
	if b.immortal {
		return nil
	}
	if b.IsLocked() {
		return ErrLocked
	}
	if b.refs.Load() <= 0 {
		return ErrFreed
	}
	b.refs.Add(1)
	return nil
}

// Release drops one holder. The atomic decrement-and-test guarantees that
// exactly one of any concurrent releasers observes zero and hands the buffer
// to its manager's Free. Releasing a locked buffer is a checked error:
// callers unlock first.
func (b *Buffer[C]) Release() error {
	if b.immortal {
		return nil
	}
	if b.IsLocked() {
		return ErrLocked
	}
	switch n := b.refs.Add(-1); {
	case n > 0:
		return nil
	case n == 0:
		b.mgr.Free(b)
		return nil
	default:
		return ErrFreed
	}
}

// Lock transitions an unshared buffer to the locked state, or deepens the
// nesting of an already-locked one.
func (b *Buffer[C]) Lock() error {
	if b.IsLocked() {
		b.locks++
		return nil
	}
	if b.IsShared() {
		return ErrShared
	}
	if b.refs.Load() <= 0 {
		return ErrFreed
	}
	b.locks = 1
	return nil
}

// Unlock reverses one Lock.
func (b *Buffer[C]) Unlock() error {
	if !b.IsLocked() {
		return ErrNotLocked
	}
	b.locks--
	return nil
}

// replaceStorage swaps in new backing storage, keeping the logical length
// and re-terminating. Manager Reallocate implementations call this after
// copying content across.
func (b *Buffer[C]) replaceStorage(units []C) {
	b.units = units
	if b.length > b.Cap() {
		b.length = b.Cap()
	}
	b.units[b.length] = 0
}
