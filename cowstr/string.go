package cowstr

import (
	"fmt"

	"github.com/joshuapare/strkit/cowstr/alloc"
	"github.com/joshuapare/strkit/internal/codec"
)

// String is a copy-on-write string value. Each String owns exactly one
// reference to its buffer; the buffer itself may be shared with any number
// of other String values until one of them writes.
//
// The zero value is not usable: construct with New, NewFromUnits or
// NewFromGoString, and pair every constructed String with a Release once it
// is no longer needed so pooled and arena-backed storage can be reclaimed.
type String[C alloc.CodeUnit] struct {
	buf *alloc.Buffer[C]
}

// New returns an empty string bound to m's nil singleton. No allocation
// occurs.
func New[C alloc.CodeUnit](m alloc.Manager[C]) (*String[C], error) {
	if m == nil {
		return nil, ErrNilManager
	}
	return &String[C]{buf: m.Nil()}, nil
}

// NewFromUnits returns a string holding a private copy of units.
func NewFromUnits[C alloc.CodeUnit](units []C, m alloc.Manager[C]) (*String[C], error) {
	if m == nil {
		return nil, ErrNilManager
	}
	if len(units) > MaxLength {
		return nil, ErrTooLong
	}
	b, err := m.Allocate(len(units))
	if err != nil {
		return nil, fmt.Errorf("cowstr: new: %w", err)
	}
	copy(b.Raw(), units)
	if err := b.SetLength(len(units)); err != nil {
		return nil, err
	}
	return &String[C]{buf: b}, nil
}

// NewFromGoString encodes s into code units and returns a string holding
// them.
func NewFromGoString[C alloc.CodeUnit](s string, m alloc.Manager[C]) (*String[C], error) {
	units, err := codec.EncodeGoString[C](s)
	if err != nil {
		return nil, fmt.Errorf("cowstr: new: %w", err)
	}
	return NewFromUnits(units, m)
}

// Len returns the logical length in code units.
func (s *String[C]) Len() int { return s.buf.Len() }

// Cap returns the allocated capacity in code units.
func (s *String[C]) Cap() int { return s.buf.Cap() }

// IsEmpty reports whether the string has length zero.
func (s *String[C]) IsEmpty() bool { return s.Len() == 0 }

// Units returns a read-only view of the string's content. The view aliases
// the buffer, which may be shared: callers must not modify it. Use GetBuffer
// for writes.
func (s *String[C]) Units() []C { return s.buf.Raw()[:s.buf.Len()] }

// String decodes the content into a Go string.
func (s *String[C]) String() string { return codec.DecodeUnits(s.Units()) }

// At returns the unit at index i. Indexing the terminator (i == Len) is
// allowed.
func (s *String[C]) At(i int) (C, error) {
	var zero C
	if i < 0 || i > s.Len() {
		return zero, ErrOutOfRange
	}
	return s.buf.Raw()[i], nil
}

// SetAt writes one unit at index i, preparing the buffer first so shared
// holders are unaffected.
func (s *String[C]) SetAt(i int, c C) error {
	if i < 0 || i >= s.Len() {
		return ErrOutOfRange
	}
	n := s.Len()
	p, err := s.GetBuffer(n)
	if err != nil {
		return err
	}
	p[i] = c
	return s.ReleaseBufferSetLength(n)
}

// Manager returns a clone of the manager this string allocates from.
func (s *String[C]) Manager() alloc.Manager[C] {
	return s.buf.Manager().Clone()
}

// Release drops the string's buffer reference. The string must not be used
// afterwards. Calling Release on an already-released string is a no-op.
func (s *String[C]) Release() error {
	if s.buf == nil {
		return nil
	}
	if err := s.buf.Release(); err != nil {
		return err
	}
	s.buf = nil
	return nil
}

// Assign makes s hold src's content. When both strings use the same manager
// and neither buffer is locked this is an O(1) share; otherwise the content
// is copied into s's own storage.
func (s *String[C]) Assign(src *String[C]) error {
	if src == nil {
		return ErrNilSource
	}
	srcBuf, oldBuf := src.buf, s.buf
	if srcBuf == oldBuf {
		return nil
	}
	if oldBuf.IsLocked() || srcBuf.Manager() != oldBuf.Manager() {
		return s.Set(src.Units())
	}
	nb, err := cloneData(srcBuf)
	if err != nil {
		return err
	}
	if err := oldBuf.Release(); err != nil {
		return err
	}
	s.buf = nb
	return nil
}

// Clone returns a new string with s's content, sharing the buffer when the
// manager permits it.
func (s *String[C]) Clone() (*String[C], error) {
	nb, err := cloneData(s.buf)
	if err != nil {
		return nil, err
	}
	return &String[C]{buf: nb}, nil
}

// cloneData returns a buffer holding b's content for a new holder: b itself
// with one more reference when it is shareable under the same manager
// identity, or a deep copy allocated from the manager's clone.
func cloneData[C alloc.CodeUnit](b *alloc.Buffer[C]) (*alloc.Buffer[C], error) {
	m := b.Manager().Clone()
	if !b.IsLocked() && m == b.Manager() {
		if err := b.AddRef(); err != nil {
			return nil, err
		}
		return b, nil
	}

	nb, err := m.Allocate(b.Len())
	if err != nil {
		return nil, fmt.Errorf("cowstr: clone: %w", err)
	}
	copy(nb.Raw(), b.Raw()[:b.Len()+1]) // include the terminator
	if err := nb.SetLength(b.Len()); err != nil {
		return nil, err
	}
	return nb, nil
}
