package cowstr

import (
	"fmt"

	"github.com/joshuapare/strkit/cowstr/alloc"
	"github.com/joshuapare/strkit/internal/buf"
	"github.com/joshuapare/strkit/internal/codec"
)

// Set replaces the content with units. The source may alias the string's own
// buffer (a substring of itself): the copy is re-based onto the prepared
// buffer, which write preparation may have relocated or forked.
func (s *String[C]) Set(units []C) error {
	n := len(units)
	if n > MaxLength {
		return ErrTooLong
	}
	if n == 0 {
		return s.Empty()
	}
	oldLen := s.Len()
	off, aliased := buf.AliasOffset(s.buf.Raw(), units)
	p, err := s.prepareWrite(n)
	if err != nil {
		return err
	}
	if aliased && off <= oldLen && off+n <= len(p) {
		copy(p[:n], p[off:off+n]) // ranges may overlap; copy is move-safe
	} else {
		copy(p[:n], units)
	}
	return s.buf.SetLength(n)
}

// SetGoString encodes str and replaces the content with it.
func (s *String[C]) SetGoString(str string) error {
	units, err := codec.EncodeGoString[C](str)
	if err != nil {
		return fmt.Errorf("cowstr: set: %w", err)
	}
	return s.Set(units)
}

// Append appends src's content. Appending a string to itself is valid.
func (s *String[C]) Append(src *String[C]) error {
	if src == nil {
		return ErrNilSource
	}
	return s.AppendUnits(src.Units())
}

// AppendUnits appends units, which may alias the string's own buffer. When
// they do, the source is recomputed relative to the prepared buffer, since
// write preparation may relocate or fork the storage; the copy itself never
// overlaps because the destination range lies beyond the old length.
func (s *String[C]) AppendUnits(units []C) error {
	n := len(units)
	oldLen := s.Len()
	newLen, ok := buf.AddOverflowSafe(oldLen, n)
	if !ok || newLen > MaxLength {
		return ErrTooLong
	}
	off, aliased := buf.AliasOffset(s.buf.Raw(), units)
	p, err := s.prepareWrite(newLen)
	if err != nil {
		return err
	}
	src := units
	if aliased && off <= oldLen {
		src = p[off : off+n]
	}
	copy(p[oldLen:newLen], src)
	return s.buf.SetLength(newLen)
}

// AppendChar appends a single unit.
func (s *String[C]) AppendChar(c C) error {
	oldLen := s.Len()
	if oldLen >= MaxLength {
		return ErrTooLong
	}
	p, err := s.prepareWrite(oldLen + 1)
	if err != nil {
		return err
	}
	p[oldLen] = c
	return s.buf.SetLength(oldLen + 1)
}

// AppendGoString encodes str and appends it.
func (s *String[C]) AppendGoString(str string) error {
	units, err := codec.EncodeGoString[C](str)
	if err != nil {
		return fmt.Errorf("cowstr: append: %w", err)
	}
	return s.AppendUnits(units)
}

// Truncate shortens the string to n units in place. n must not exceed the
// current length; a shared buffer is forked first so other holders keep
// their content.
func (s *String[C]) Truncate(n int) error {
	if n < 0 || n > s.Len() {
		return ErrOutOfRange
	}
	if _, err := s.GetBuffer(n); err != nil {
		return err
	}
	return s.ReleaseBufferSetLength(n)
}

// Empty resets the string to length zero. An already-empty string is
// untouched. A locked buffer cannot be released, so it shrinks in place;
// otherwise the buffer reference is dropped and the string rebinds to the
// manager's nil singleton.
func (s *String[C]) Empty() error {
	b := s.buf
	if b.Len() == 0 {
		return nil
	}
	if b.IsLocked() {
		return b.SetLength(0)
	}
	m := b.Manager()
	if err := b.Release(); err != nil {
		return err
	}
	s.buf = m.Nil()
	return nil
}

// FreeExtra trims unused capacity by moving the content into an exactly
// sized buffer. A locked buffer is left alone, and so is the string when the
// replacement allocation fails: shrinking is an optimization, not an
// obligation.
func (s *String[C]) FreeExtra() {
	b := s.buf
	n := b.Len()
	if b.IsLocked() || b.Cap() == n {
		return
	}
	nb, err := b.Manager().Allocate(n)
	if err != nil {
		return // keep the over-allocated buffer
	}
	copy(nb.Raw(), b.Raw()[:n])
	if nb.SetLength(n) != nil {
		return
	}
	_ = b.Release()
	s.buf = nb
}

// Concat returns a new string holding a's content followed by b's, allocated
// from a's manager.
func Concat[C alloc.CodeUnit](a, b *String[C]) (*String[C], error) {
	if a == nil || b == nil {
		return nil, ErrNilSource
	}
	n1, n2 := a.Len(), b.Len()
	newLen, ok := buf.AddOverflowSafe(n1, n2)
	if !ok || newLen > MaxLength {
		return nil, ErrTooLong
	}
	out, err := New(a.Manager())
	if err != nil {
		return nil, err
	}
	p, err := out.GetBuffer(newLen)
	if err != nil {
		return nil, err
	}
	copy(p[:n1], a.Units())
	copy(p[n1:newLen], b.Units())
	if err := out.ReleaseBufferSetLength(newLen); err != nil {
		return nil, err
	}
	return out, nil
}
