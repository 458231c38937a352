package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if got, ok := MulOverflowSafe(7, 3); !ok || got != 21 {
		t.Fatalf("MulOverflowSafe(7,3)=%d,%v want 21,true", got, ok)
	}
	if got, ok := MulOverflowSafe(0, math.MaxInt); !ok || got != 0 {
		t.Fatalf("MulOverflowSafe(0,MaxInt)=%d,%v want 0,true", got, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2, 3); ok {
		t.Fatalf("expected overflow for MaxInt/2 * 3")
	}
}

func TestIndexZero(t *testing.T) {
	if got := IndexZero([]byte{'a', 'b', 0, 'c'}); got != 2 {
		t.Fatalf("IndexZero=%d want 2", got)
	}
	if got := IndexZero([]uint16{7, 9}); got != -1 {
		t.Fatalf("IndexZero without terminator=%d want -1", got)
	}
	if got := IndexZero([]byte{0}); got != 0 {
		t.Fatalf("IndexZero leading terminator=%d want 0", got)
	}
	if got := IndexZero([]byte(nil)); got != -1 {
		t.Fatalf("IndexZero(nil)=%d want -1", got)
	}
}

func TestAliasOffset(t *testing.T) {
	backing := []byte("hello world")

	if off, ok := AliasOffset(backing, backing[6:]); !ok || off != 6 {
		t.Fatalf("AliasOffset(sub)=%d,%v want 6,true", off, ok)
	}
	if off, ok := AliasOffset(backing, backing); !ok || off != 0 {
		t.Fatalf("AliasOffset(self)=%d,%v want 0,true", off, ok)
	}
	if _, ok := AliasOffset(backing, []byte("elsewhere")); ok {
		t.Fatalf("AliasOffset should be false for unrelated storage")
	}
	if _, ok := AliasOffset(backing, nil); ok {
		t.Fatalf("AliasOffset should be false for empty src")
	}

	wide := []uint16{1, 2, 3, 4}
	if off, ok := AliasOffset(wide, wide[2:]); !ok || off != 2 {
		t.Fatalf("AliasOffset(wide sub)=%d,%v want 2,true", off, ok)
	}
}
