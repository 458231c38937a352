package alloc

import "sync"

// Limited wraps another manager with a code-unit budget, counted in backing
// units (capacity plus terminator slot). Once the budget is spent, Allocate
// and Reallocate report ErrNoMemory; Free refunds. It gives tests and
// constrained callers a deterministic out-of-memory path on top of managers
// that cannot otherwise fail.
type Limited[C CodeUnit] struct {
	inner     Manager[C]
	remaining int

	nilOnce sync.Once
	nilBuf  *Buffer[C]
}

// NewLimited wraps inner with a budget of that many backing units.
func NewLimited[C CodeUnit](inner Manager[C], budget int) *Limited[C] {
	return &Limited[C]{inner: inner, remaining: budget}
}

// Allocate delegates to the wrapped manager, charging the storage actually
// handed out. Buffers are rebound to the wrapper so Free refunds the budget.
func (l *Limited[C]) Allocate(n int) (*Buffer[C], error) {
	if n < 0 {
		return nil, ErrBadLength
	}
	if n+1 > l.remaining {
		return nil, ErrNoMemory
	}
	b, err := l.inner.Allocate(n)
	if err != nil {
		return nil, err
	}
	b.mgr = l
	l.remaining -= len(b.units)
	return b, nil
}

// Free refunds the buffer's storage and delegates.
func (l *Limited[C]) Free(b *Buffer[C]) {
	l.remaining += len(b.units)
	l.inner.Free(b)
}

// Reallocate charges the growth before delegating; on failure the buffer is
// untouched and nothing is charged.
func (l *Limited[C]) Reallocate(b *Buffer[C], n int) (*Buffer[C], error) {
	if n < 0 {
		return nil, ErrBadLength
	}
	old := len(b.units)
	if n+1-old > l.remaining {
		return nil, ErrNoMemory
	}
	nb, err := l.inner.Reallocate(b, n)
	if err != nil {
		return nil, err
	}
	l.remaining -= len(nb.units) - old
	return nb, nil
}

// Nil returns the wrapper's own empty-string singleton, so strings created
// under the budget share the wrapper's identity.
func (l *Limited[C]) Nil() *Buffer[C] {
	l.nilOnce.Do(func() {
		nb := NewNil[C]()
		if err := nb.BindManager(l); err != nil {
			panic(err) // unreachable: the buffer was created unbound
		}
		l.nilBuf = nb
	})
	return l.nilBuf
}

// Clone returns the same instance: the budget is shared across clones.
func (l *Limited[C]) Clone() Manager[C] { return l }

// Remaining returns the unspent budget in backing units.
func (l *Limited[C]) Remaining() int { return l.remaining }

// Counting wraps another manager and counts its calls. It backs assertions
// such as "assignment between strings on one manager performs no
// allocation".
type Counting[C CodeUnit] struct {
	inner                   Manager[C]
	allocs, reallocs, frees int

	nilOnce sync.Once
	nilBuf  *Buffer[C]
}

// NewCounting wraps inner with call counters.
func NewCounting[C CodeUnit](inner Manager[C]) *Counting[C] {
	return &Counting[C]{inner: inner}
}

// Allocate delegates, rebinding the buffer to the wrapper.
func (c *Counting[C]) Allocate(n int) (*Buffer[C], error) {
	b, err := c.inner.Allocate(n)
	if err != nil {
		return nil, err
	}
	c.allocs++
	b.mgr = c
	return b, nil
}

// Free delegates.
func (c *Counting[C]) Free(b *Buffer[C]) {
	c.frees++
	c.inner.Free(b)
}

// Reallocate delegates.
func (c *Counting[C]) Reallocate(b *Buffer[C], n int) (*Buffer[C], error) {
	nb, err := c.inner.Reallocate(b, n)
	if err != nil {
		return nil, err
	}
	c.reallocs++
	return nb, nil
}

// Nil returns the wrapper's own empty-string singleton.
func (c *Counting[C]) Nil() *Buffer[C] {
	c.nilOnce.Do(func() {
		nb := NewNil[C]()
		if err := nb.BindManager(c); err != nil {
			panic(err) // unreachable: the buffer was created unbound
		}
		c.nilBuf = nb
	})
	return c.nilBuf
}

// Clone returns the same instance.
func (c *Counting[C]) Clone() Manager[C] { return c }

// Allocs returns the number of successful Allocate calls.
func (c *Counting[C]) Allocs() int { return c.allocs }

// Reallocs returns the number of successful Reallocate calls.
func (c *Counting[C]) Reallocs() int { return c.reallocs }

// Frees returns the number of Free calls.
func (c *Counting[C]) Frees() int { return c.frees }
