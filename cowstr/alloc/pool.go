package alloc

import (
	"sync"

	"github.com/joshuapare/strkit/internal/buf"
)

// Pool is a recycling manager: freed buffers return their storage to a
// segregated sync.Pool keyed by size class, so string churn reuses memory
// instead of growing the heap. Oversized allocations beyond the configured
// MediumMax bypass the pools entirely.
type Pool[C CodeUnit] struct {
	table *sizeClassTable
	pools []sync.Pool // one per size class; each holds *[]C of exactly the class size

	nilOnce sync.Once
	nilBuf  *Buffer[C]
}

// NewPool returns a pool manager using the given size-class configuration.
// Pass DefaultConfig unless a workload-specific table has been measured.
func NewPool[C CodeUnit](config SizeClassConfig) *Pool[C] {
	table := newSizeClassTable(config)
	return &Pool[C]{
		table: table,
		pools: make([]sync.Pool, table.NumClasses()),
	}
}

// getUnits obtains storage holding at least total units, recycled when a
// size class covers the request.
func (p *Pool[C]) getUnits(total int) []C {
	cls := p.table.classOf(total)
	if cls >= p.table.numClasses {
		return make([]C, total)
	}
	classSize := p.table.boundaries[cls]
	if v := p.pools[cls].Get(); v != nil {
		return *(v.(*[]C))
	}
	return make([]C, classSize)
}

// putUnits returns storage to its class pool. Storage that does not exactly
// match a class size (oversized bypass allocations) is dropped for the
// garbage collector.
func (p *Pool[C]) putUnits(units []C) {
	cls := p.table.classOf(len(units))
	if cls >= p.table.numClasses || p.table.boundaries[cls] != len(units) {
		return
	}
	p.pools[cls].Put(&units)
}

// Allocate returns a buffer with capacity for at least n units plus the
// terminator, possibly recycled.
func (p *Pool[C]) Allocate(n int) (*Buffer[C], error) {
	total, ok := buf.AddOverflowSafe(n, 1)
	if n < 0 || !ok {
		return nil, ErrBadLength
	}
	return BufferFromUnits(p, p.getUnits(total))
}

// Free recycles b's storage into the matching class pool.
func (p *Pool[C]) Free(b *Buffer[C]) {
	units := b.units
	b.units = nil
	p.putUnits(units)
}

// Reallocate moves b onto storage of capacity at least n, preserving content
// and recycling the old storage. The handle is reused.
func (p *Pool[C]) Reallocate(b *Buffer[C], n int) (*Buffer[C], error) {
	total, ok := buf.AddOverflowSafe(n, 1)
	if n < 0 || !ok {
		return nil, ErrBadLength
	}
	units := p.getUnits(total)
	old := b.units
	copy(units, old)
	b.replaceStorage(units)
	p.putUnits(old)
	return b, nil
}

// Nil returns the pool's empty-string singleton. Never recycled: the
// singleton is immortal.
func (p *Pool[C]) Nil() *Buffer[C] {
	p.nilOnce.Do(func() {
		nb := NewNil[C]()
		if err := nb.BindManager(p); err != nil {
			panic(err) // unreachable: the buffer was created unbound
		}
		p.nilBuf = nb
	})
	return p.nilBuf
}

// Clone returns the same instance so recycled storage stays in one set of
// pools.
func (p *Pool[C]) Clone() Manager[C] { return p }
