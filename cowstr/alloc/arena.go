package alloc

import (
	"sync"
	"unsafe"

	"github.com/joshuapare/strkit/internal/buf"
)

// arenaAlign keeps every bump allocation 8-byte aligned, which satisfies the
// alignment of both supported code-unit widths.
const arenaAlign = 8

// Arena is a bump-pointer manager over a fixed, pre-reserved region. It
// never frees individual buffers (Free is a no-op and Reallocate abandons
// the old block), so it suits batch workloads that build many strings and
// discard them together with Close.
//
// Because the region is fixed, exhaustion is real: Allocate returns
// ErrNoMemory and the caller's strings remain valid.
type Arena[C CodeUnit] struct {
	region  []byte
	off     int
	release func() error
	closed  bool

	nilOnce sync.Once
	nilBuf  *Buffer[C]
}

// NewArena reserves a region able to hold capacity code units (plus
// terminator and alignment overhead per allocation). On unix platforms the
// region is an anonymous mapping released by Close; elsewhere it falls back
// to garbage-collected storage.
func NewArena[C CodeUnit](capacity int) (*Arena[C], error) {
	size, ok := buf.MulOverflowSafe(capacity, Width[C]())
	if capacity <= 0 || !ok {
		return nil, ErrBadLength
	}
	region, release, err := mapRegion(size)
	if err != nil {
		return nil, err
	}
	return &Arena[C]{region: region, release: release}, nil
}

// grab carves total code units out of the region.
func (a *Arena[C]) grab(total int) ([]C, error) {
	if a.closed {
		return nil, ErrClosed
	}
	need, ok := buf.MulOverflowSafe(total, Width[C]())
	if !ok {
		return nil, ErrBadLength
	}
	need = (need + arenaAlign - 1) &^ (arenaAlign - 1)
	end, ok := buf.AddOverflowSafe(a.off, need)
	if !ok || end > len(a.region) {
		return nil, ErrNoMemory
	}
	units := unsafe.Slice((*C)(unsafe.Pointer(&a.region[a.off])), total)
	a.off = end
	return units, nil
}

// Allocate bumps the pointer and wraps the carved storage.
func (a *Arena[C]) Allocate(n int) (*Buffer[C], error) {
	total, ok := buf.AddOverflowSafe(n, 1)
	if n < 0 || !ok {
		return nil, ErrBadLength
	}
	units, err := a.grab(total)
	if err != nil {
		return nil, err
	}
	return BufferFromUnits(a, units)
}

// Free is a no-op: arena storage is reclaimed only by Close.
func (a *Arena[C]) Free(b *Buffer[C]) {
	b.units = nil
}

// Reallocate carves a new block, copies content across and abandons the old
// block. On exhaustion the buffer is left valid and unchanged.
func (a *Arena[C]) Reallocate(b *Buffer[C], n int) (*Buffer[C], error) {
	total, ok := buf.AddOverflowSafe(n, 1)
	if n < 0 || !ok {
		return nil, ErrBadLength
	}
	units, err := a.grab(total)
	if err != nil {
		return nil, err
	}
	copy(units, b.units)
	b.replaceStorage(units)
	return b, nil
}

// Nil returns the arena's empty-string singleton. It lives outside the
// region so it survives Close.
func (a *Arena[C]) Nil() *Buffer[C] {
	a.nilOnce.Do(func() {
		nb := NewNil[C]()
		if err := nb.BindManager(a); err != nil {
			panic(err) // unreachable: the buffer was created unbound
		}
		a.nilBuf = nb
	})
	return a.nilBuf
}

// Clone returns the same instance: all allocations share one region.
func (a *Arena[C]) Clone() Manager[C] { return a }

// Remaining returns how many bytes of the region are still unallocated.
func (a *Arena[C]) Remaining() int {
	return len(a.region) - a.off
}

// Close releases the region. Buffers allocated from the arena must not be
// used afterwards.
func (a *Arena[C]) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.region = nil
	return a.release()
}
