package cowstr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/strkit/cowstr/alloc"
)

// TestNew_DefaultString verifies a fresh string is a valid zero-length,
// terminated buffer with no allocation behind it.
func TestNew_DefaultString(t *testing.T) {
	c := alloc.NewCounting[byte](alloc.NewHeap[byte]())

	s, err := New[byte](c)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, c.Allocs(), "empty construction binds the nil singleton")

	term, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0), term, "terminator indexable at length offset")

	_, err = New[byte](nil)
	assert.ErrorIs(t, err, ErrNilManager)
}

// TestNew_SharedNilSingleton verifies all empty strings on one manager share
// one buffer.
func TestNew_SharedNilSingleton(t *testing.T) {
	h := alloc.NewHeap[byte]()

	s1, err := New[byte](h)
	require.NoError(t, err)
	s2, err := New[byte](h)
	require.NoError(t, err)
	assert.Same(t, s1.buf, s2.buf)
	assert.Same(t, s1.buf, h.Nil())
}

// TestNewFromUnits verifies construction copies content and terminates.
func TestNewFromUnits(t *testing.T) {
	h := alloc.NewHeap[byte]()

	src := []byte("hello")
	s, err := NewFromUnits(src, h)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, "hello", s.String())

	// The string owns a private copy.
	src[0] = 'X'
	assert.Equal(t, "hello", s.String())

	term, err := s.At(5)
	require.NoError(t, err)
	assert.Equal(t, byte(0), term)
	require.NoError(t, s.Release())
}

// TestAssign_SharesWithoutAllocation covers the O(1) copy property: same
// manager, unlocked source, one atomic increment, no allocator traffic.
func TestAssign_SharesWithoutAllocation(t *testing.T) {
	c := alloc.NewCounting[byte](alloc.NewHeap[byte]())

	s1, err := NewFromGoString[byte]("hello", c)
	require.NoError(t, err)
	require.Equal(t, 1, c.Allocs())

	s2, err := New[byte](c)
	require.NoError(t, err)
	require.NoError(t, s2.Assign(s1))

	assert.Equal(t, 1, c.Allocs(), "sharing performs no allocation")
	assert.Same(t, s1.buf, s2.buf)
	assert.Equal(t, int32(2), s1.buf.Refs(), "holder count up by exactly one")
	assert.Equal(t, "hello", s2.String())

	// Assigning again is a no-op on identical buffers.
	require.NoError(t, s2.Assign(s1))
	assert.Equal(t, int32(2), s1.buf.Refs())

	require.NoError(t, s1.Release())
	require.NoError(t, s2.Release())
}

// TestAssign_CopyOnWriteScenario is the classic shared-then-mutate sequence:
// the writer forks, the other holder is unaffected.
func TestAssign_CopyOnWriteScenario(t *testing.T) {
	h := alloc.NewHeap[byte]()

	s1, err := NewFromGoString[byte]("hello", h)
	require.NoError(t, err)
	s2, err := s1.Clone()
	require.NoError(t, err)
	require.Same(t, s1.buf, s2.buf)

	require.NoError(t, s1.AppendGoString(" world"))

	assert.Equal(t, "hello world", s1.String())
	assert.Equal(t, 11, s1.Len())
	assert.Equal(t, "hello", s2.String())
	assert.Equal(t, 5, s2.Len())
	assert.NotSame(t, s1.buf, s2.buf)
	assert.Equal(t, int32(1), s2.buf.Refs())

	require.NoError(t, s1.Release())
	require.NoError(t, s2.Release())
}

// TestAssign_CrossManagerDeepCopies verifies content crosses manager
// boundaries by value, and the destination keeps its own manager.
func TestAssign_CrossManagerDeepCopies(t *testing.T) {
	ma := alloc.NewHeap[byte]()
	mb := alloc.NewHeap[byte]()

	s1, err := NewFromGoString[byte]("xyz", ma)
	require.NoError(t, err)
	s2, err := New[byte](mb)
	require.NoError(t, err)

	require.NoError(t, s2.Assign(s1))
	assert.Equal(t, "xyz", s2.String())
	assert.NotSame(t, s1.buf, s2.buf)
	assert.Same(t, mb, s2.Manager(), "destination keeps its manager")
	assert.Equal(t, int32(1), s1.buf.Refs(), "source not shared across managers")

	require.NoError(t, s1.Release())
	require.NoError(t, s2.Release())
}

// TestAssign_LockedDestinationCopies verifies a locked destination never
// adopts a foreign buffer.
func TestAssign_LockedDestinationCopies(t *testing.T) {
	h := alloc.NewHeap[byte]()

	src, err := NewFromGoString[byte]("abc", h)
	require.NoError(t, err)
	dst, err := NewFromGoString[byte]("zzzzz", h)
	require.NoError(t, err)

	_, err = dst.LockBuffer()
	require.NoError(t, err)

	require.NoError(t, dst.Assign(src))
	assert.Equal(t, "abc", dst.String())
	assert.NotSame(t, src.buf, dst.buf)
	assert.True(t, dst.buf.IsLocked(), "copy into the locked buffer keeps the lock")

	require.NoError(t, dst.UnlockBuffer())
	require.NoError(t, dst.Release())
	require.NoError(t, src.Release())
}

// TestClone_LockedSourceCopies verifies cloning a locked string yields an
// independent buffer.
func TestClone_LockedSourceCopies(t *testing.T) {
	h := alloc.NewHeap[byte]()

	s, err := NewFromGoString[byte]("abc", h)
	require.NoError(t, err)
	_, err = s.LockBuffer()
	require.NoError(t, err)

	c, err := s.Clone()
	require.NoError(t, err)
	assert.Equal(t, "abc", c.String())
	assert.NotSame(t, s.buf, c.buf)
	assert.False(t, c.buf.IsLocked())

	require.NoError(t, s.UnlockBuffer())
	require.NoError(t, s.Release())
	require.NoError(t, c.Release())
}

// TestSetAt verifies indexed writes preserve copy-on-write semantics.
func TestSetAt(t *testing.T) {
	h := alloc.NewHeap[byte]()

	s1, err := NewFromGoString[byte]("abc", h)
	require.NoError(t, err)
	s2, err := s1.Clone()
	require.NoError(t, err)

	require.NoError(t, s1.SetAt(0, 'X'))
	assert.Equal(t, "Xbc", s1.String())
	assert.Equal(t, "abc", s2.String(), "other holder unaffected")

	assert.ErrorIs(t, s1.SetAt(3, 'x'), ErrOutOfRange, "terminator not writable")
	assert.ErrorIs(t, s1.SetAt(-1, 'x'), ErrOutOfRange)

	_, err = s1.At(4)
	assert.ErrorIs(t, err, ErrOutOfRange)

	require.NoError(t, s1.Release())
	require.NoError(t, s2.Release())
}

// TestRelease verifies release is idempotent and refuses locked buffers.
func TestRelease(t *testing.T) {
	h := alloc.NewHeap[byte]()

	s, err := NewFromGoString[byte]("abc", h)
	require.NoError(t, err)
	_, err = s.LockBuffer()
	require.NoError(t, err)

	assert.ErrorIs(t, s.Release(), alloc.ErrLocked, "unlock must precede release")
	require.NoError(t, s.UnlockBuffer())
	require.NoError(t, s.Release())
	require.NoError(t, s.Release(), "second release is a no-op")
}
