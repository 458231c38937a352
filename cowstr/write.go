package cowstr

import (
	"fmt"

	"github.com/joshuapare/strkit/cowstr/alloc"
	"github.com/joshuapare/strkit/internal/buf"
)

// Growth policy: exponential by 1.5 until growLimit code units, then linear
// by growStep.
const (
	growLimit = 1 << 30
	growStep  = 1 << 20
)

// GetBuffer prepares the buffer for writing and returns the writable backing
// storage, sized to hold at least minLength units plus a terminator. The
// caller finishes with ReleaseBuffer or ReleaseBufferSetLength.
//
// After GetBuffer the buffer is private to s: if it was shared, a fork
// happened; if it was too small, it grew. The returned slice is invalidated
// by any other operation on s.
func (s *String[C]) GetBuffer(minLength int) ([]C, error) {
	return s.prepareWrite(minLength)
}

// GetBufferSetLength is GetBuffer followed by committing n as the logical
// length immediately.
func (s *String[C]) GetBufferSetLength(n int) ([]C, error) {
	p, err := s.prepareWrite(n)
	if err != nil {
		return nil, err
	}
	if err := s.buf.SetLength(n); err != nil {
		return nil, err
	}
	return p, nil
}

// Preallocate grows the buffer to hold at least n units without changing the
// content or length.
func (s *String[C]) Preallocate(n int) error {
	_, err := s.prepareWrite(n)
	return err
}

// ReleaseBuffer commits the logical length by scanning for the terminator
// the caller wrote. Without one, the full capacity is committed.
func (s *String[C]) ReleaseBuffer() error {
	raw := s.buf.Raw()
	n := buf.IndexZero(raw[:s.buf.Cap()])
	if n < 0 {
		n = s.buf.Cap()
	}
	return s.buf.SetLength(n)
}

// ReleaseBufferSetLength commits n as the logical length and re-terminates.
func (s *String[C]) ReleaseBufferSetLength(n int) error {
	if n < 0 {
		return ErrOutOfRange
	}
	return s.buf.SetLength(n)
}

// LockBuffer makes the buffer exclusive and returns its raw storage for
// external, unmanaged mutation. A shared buffer is forked first, so no other
// holder can observe the writes. UnlockBuffer reverses the transition.
func (s *String[C]) LockBuffer() ([]C, error) {
	b := s.buf
	if b.IsShared() {
		if err := s.fork(b.Len()); err != nil {
			return nil, err
		}
		b = s.buf
	}
	if err := b.Lock(); err != nil {
		return nil, err
	}
	return b.Raw(), nil
}

// UnlockBuffer reverses one LockBuffer.
func (s *String[C]) UnlockBuffer() error {
	return s.buf.Unlock()
}

// prepareWrite returns writable storage with capacity for at least n units.
// Fast path: an unshared buffer that is already big enough is returned
// untouched, with no copy and no allocation.
func (s *String[C]) prepareWrite(n int) ([]C, error) {
	if n < 0 || n > MaxLength {
		return nil, fmt.Errorf("cowstr: %w", alloc.ErrBadLength)
	}
	b := s.buf
	if !b.IsShared() && b.Cap() >= n {
		return b.Raw(), nil
	}
	if err := s.prepareWriteSlow(n); err != nil {
		return nil, err
	}
	return s.buf.Raw(), nil
}

// prepareWriteSlow forks a shared buffer or grows a private one. The
// requested size never shrinks below the current content.
func (s *String[C]) prepareWriteSlow(n int) error {
	b := s.buf
	if b.Len() > n {
		n = b.Len()
	}
	if b.IsShared() {
		return s.fork(n)
	}
	if b.Cap() < n {
		newCap := b.Cap()
		if newCap > growLimit {
			newCap += growStep
		} else {
			newCap += newCap / 2
		}
		if newCap < n {
			newCap = n
		}
		return s.reallocate(newCap)
	}
	return nil
}

// fork replaces the shared buffer with a private copy of capacity at least
// n, allocated from the current manager's clone. Other holders keep the
// original buffer. On allocation failure s is unchanged.
func (s *String[C]) fork(n int) error {
	old := s.buf
	m := old.Manager().Clone()
	nb, err := m.Allocate(n)
	if err != nil {
		return fmt.Errorf("cowstr: fork: %w", err)
	}
	keep := old.Len()
	if n < keep {
		keep = n
	}
	copy(nb.Raw(), old.Raw()[:keep+1]) // include the terminator
	if err := nb.SetLength(old.Len()); err != nil {
		return err
	}
	if err := old.Release(); err != nil {
		return err
	}
	s.buf = nb
	return nil
}

// reallocate grows the private buffer in place or by relocation, preserving
// content and manager identity. On failure s is unchanged.
func (s *String[C]) reallocate(n int) error {
	b := s.buf
	nb, err := b.Manager().Reallocate(b, n)
	if err != nil {
		return fmt.Errorf("cowstr: grow: %w", err)
	}
	s.buf = nb
	return nil
}
