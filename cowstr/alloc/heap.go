package alloc

import (
	"sync"

	"github.com/joshuapare/strkit/internal/buf"
)

// Heap is the stateless, Go-runtime-backed manager. Free is a no-op because
// the garbage collector reclaims storage once the last handle goes away, and
// Clone returns the receiver: every Heap allocation carries the identity of
// the instance it came from, so identity comparisons between strings built
// on the same Heap succeed and sharing stays O(1).
type Heap[C CodeUnit] struct {
	nilOnce sync.Once
	nilBuf  *Buffer[C]
}

// NewHeap returns a heap manager. Distinct instances have distinct
// identities; strings assigned across instances copy content instead of
// sharing buffers.
func NewHeap[C CodeUnit]() *Heap[C] {
	return &Heap[C]{}
}

// Allocate returns a fresh garbage-collected buffer.
func (h *Heap[C]) Allocate(n int) (*Buffer[C], error) {
	return NewBuffer[C](h, n)
}

// Free is a no-op beyond severing the storage so that late use of a released
// buffer fails loudly instead of resurrecting it.
func (h *Heap[C]) Free(b *Buffer[C]) {
	b.units = nil
}

// Reallocate relocates b onto fresh storage of capacity n, preserving
// content up to min(old, new) plus the terminator. The handle is reused.
func (h *Heap[C]) Reallocate(b *Buffer[C], n int) (*Buffer[C], error) {
	total, ok := buf.AddOverflowSafe(n, 1)
	if n < 0 || !ok {
		return nil, ErrBadLength
	}
	units := make([]C, total)
	copy(units, b.units)
	b.replaceStorage(units)
	return b, nil
}

// Nil returns the heap's empty-string singleton, created and bound on first
// use.
func (h *Heap[C]) Nil() *Buffer[C] {
	h.nilOnce.Do(func() {
		nb := NewNil[C]()
		if err := nb.BindManager(h); err != nil {
			panic(err) // unreachable: the buffer was created unbound
		}
		h.nilBuf = nb
	})
	return h.nilBuf
}

// Clone returns the same instance: the heap holds no per-clone state.
func (h *Heap[C]) Clone() Manager[C] { return h }
