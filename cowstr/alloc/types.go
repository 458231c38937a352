package alloc

import "unsafe"

// CodeUnit constrains the storage unit of a string buffer. Narrow strings
// store one byte per unit, wide strings one uint16 per unit; the width is a
// type parameter of the whole stack rather than a runtime argument.
type CodeUnit interface {
	~byte | ~uint16
}

// Width returns the size of C in bytes.
func Width[C CodeUnit]() int {
	var c C
	return int(unsafe.Sizeof(c))
}

// Manager is the pluggable allocation contract the string core requires from
// its environment. All operations are side-effect-free with respect to
// buffers other than their argument.
//
// Implementations:
//   - Heap: stateless, garbage-collected storage
//   - Pool: size-class-tiered recycling storage
//   - Arena: bump-pointer storage over a fixed mapping
//   - Limited, Counting: wrappers for budgets and observability
type Manager[C CodeUnit] interface {
	// Allocate returns a buffer with capacity for at least n code units plus
	// one terminator slot, a reference count of one, and a logical length of
	// zero. Exhaustion is reported as ErrNoMemory, never a panic.
	Allocate(n int) (*Buffer[C], error)

	// Free releases b's backing storage. The caller guarantees that b is
	// unreachable and its reference count has already reached zero; Free is
	// invoked by Buffer.Release, not by string code directly.
	Free(b *Buffer[C])

	// Reallocate resizes b to hold at least n code units, preserving content
	// up to min(old, new) and the terminator. The returned handle may differ
	// from b; on failure b is valid and unchanged.
	Reallocate(b *Buffer[C], n int) (*Buffer[C], error)

	// Nil returns this manager's empty-buffer singleton. Repeated calls
	// return a buffer with identical observable state.
	Nil() *Buffer[C]

	// Clone returns a handle usable for future allocations. A stateless
	// manager may return itself; a stateful one may return a distinct
	// instance. Callers compare identity and never assume either.
	Clone() Manager[C]
}
