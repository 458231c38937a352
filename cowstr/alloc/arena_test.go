package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestArena_BumpAllocation verifies sequential carving out of the region.
func TestArena_BumpAllocation(t *testing.T) {
	a, err := NewArena[byte](256)
	require.NoError(t, err)
	defer a.Close()

	before := a.Remaining()
	b1, err := a.Allocate(10)
	require.NoError(t, err)
	assert.Equal(t, 10, b1.Cap())
	assert.Less(t, a.Remaining(), before, "allocation consumes the region")

	b2, err := a.Allocate(10)
	require.NoError(t, err)
	copy(b1.Raw(), "aaaaaaaaaa")
	copy(b2.Raw(), "bbbbbbbbbb")
	require.NoError(t, b1.SetLength(10))
	require.NoError(t, b2.SetLength(10))
	assert.Equal(t, []byte("aaaaaaaaaa"), b1.Raw()[:10], "blocks do not overlap")
	assert.Equal(t, []byte("bbbbbbbbbb"), b2.Raw()[:10])
}

// TestArena_Exhaustion verifies that running out of region is a recoverable
// ErrNoMemory, not a panic.
func TestArena_Exhaustion(t *testing.T) {
	a, err := NewArena[byte](64)
	require.NoError(t, err)
	defer a.Close()

	b, err := a.Allocate(32)
	require.NoError(t, err)
	copy(b.Raw(), "0123456789")
	require.NoError(t, b.SetLength(10))

	_, err = a.Allocate(64)
	assert.ErrorIs(t, err, ErrNoMemory)

	// Failed reallocation leaves the buffer valid and unchanged.
	_, err = a.Reallocate(b, 1<<20)
	assert.ErrorIs(t, err, ErrNoMemory)
	assert.Equal(t, 10, b.Len())
	assert.Equal(t, []byte("0123456789"), b.Raw()[:10])
}

// TestArena_Reallocate verifies growth abandons the old block but preserves
// content.
func TestArena_Reallocate(t *testing.T) {
	a, err := NewArena[byte](1024)
	require.NoError(t, err)
	defer a.Close()

	b, err := a.Allocate(4)
	require.NoError(t, err)
	copy(b.Raw(), "abcd")
	require.NoError(t, b.SetLength(4))

	nb, err := a.Reallocate(b, 100)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, nb.Cap(), 100)
	assert.Equal(t, []byte("abcd"), nb.Raw()[:4])
	assert.Equal(t, 4, nb.Len())
}

// TestArena_WideAlignment verifies 16-bit units come out of the byte region
// correctly aligned and usable.
func TestArena_WideAlignment(t *testing.T) {
	a, err := NewArena[uint16](128)
	require.NoError(t, err)
	defer a.Close()

	b1, err := a.Allocate(3)
	require.NoError(t, err)
	b2, err := a.Allocate(3)
	require.NoError(t, err)

	copy(b1.Raw(), []uint16{1, 2, 3})
	copy(b2.Raw(), []uint16{4, 5, 6})
	require.NoError(t, b1.SetLength(3))
	require.NoError(t, b2.SetLength(3))
	assert.Equal(t, []uint16{1, 2, 3}, b1.Raw()[:3])
	assert.Equal(t, []uint16{4, 5, 6}, b2.Raw()[:3])
}

// TestArena_Close verifies post-close allocation fails and double close is
// harmless.
func TestArena_Close(t *testing.T) {
	a, err := NewArena[byte](64)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	_, err = a.Allocate(4)
	assert.ErrorIs(t, err, ErrClosed)
	require.NoError(t, a.Close())
}

// TestArena_NilSingletonSurvivesClose verifies the singleton lives outside
// the region.
func TestArena_NilSingletonSurvivesClose(t *testing.T) {
	a, err := NewArena[byte](64)
	require.NoError(t, err)

	nb := a.Nil()
	require.NoError(t, a.Close())
	assert.Equal(t, 0, nb.Len())
	assert.Equal(t, byte(0), nb.Raw()[0])
}
