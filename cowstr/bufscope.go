package cowstr

import "github.com/joshuapare/strkit/cowstr/alloc"

// AcquireOptions controls AcquireLen behavior.
type AcquireOptions struct {
	// SetLength commits minLength as the logical length at acquisition time
	// instead of deriving the final length from the terminator at Release.
	SetLength bool
}

// BufScope grants temporary direct write access to a string's buffer and
// guarantees that a final length is committed exactly once when the scope
// ends. Acquire, defer Release, write:
//
//	sb, err := cowstr.AcquireLen(s, n, nil)
//	if err != nil {
//	    return err
//	}
//	defer sb.Release()
//	fill(sb.Units())
//	sb.SetLength(k)
//
// Without an explicit SetLength, Release rescans for the terminator the
// caller must have written.
type BufScope[C alloc.CodeUnit] struct {
	s        *String[C]
	units    []C
	length   int // committed on Release; -1 derives it from the terminator
	released bool
}

// Acquire grants write access to s's current content without resizing.
func Acquire[C alloc.CodeUnit](s *String[C]) (*BufScope[C], error) {
	if s == nil {
		return nil, ErrNilSource
	}
	units, err := s.GetBuffer(s.Len())
	if err != nil {
		return nil, err
	}
	return &BufScope[C]{s: s, units: units, length: -1}, nil
}

// AcquireLen grants write access to at least minLength units. A nil opts
// selects the defaults: length derived from the terminator at Release.
func AcquireLen[C alloc.CodeUnit](s *String[C], minLength int, opts *AcquireOptions) (*BufScope[C], error) {
	if s == nil {
		return nil, ErrNilSource
	}
	if opts != nil && opts.SetLength {
		units, err := s.GetBufferSetLength(minLength)
		if err != nil {
			return nil, err
		}
		return &BufScope[C]{s: s, units: units, length: minLength}, nil
	}
	units, err := s.GetBuffer(minLength)
	if err != nil {
		return nil, err
	}
	return &BufScope[C]{s: s, units: units, length: -1}, nil
}

// Units returns the writable storage acquired for this scope.
func (sb *BufScope[C]) Units() []C { return sb.units }

// SetLength records the logical length Release will commit.
func (sb *BufScope[C]) SetLength(n int) error {
	if n < 0 {
		return ErrOutOfRange
	}
	sb.length = n
	return nil
}

// Release commits the final length to the underlying string: the recorded
// one, or the terminator-derived one when none was set. Safe to defer
// alongside an explicit call; only the first Release commits.
func (sb *BufScope[C]) Release() error {
	if sb.released {
		return nil
	}
	sb.released = true
	sb.units = nil
	if sb.length < 0 {
		return sb.s.ReleaseBuffer()
	}
	return sb.s.ReleaseBufferSetLength(sb.length)
}
