package alloc

import "errors"

var (
	// ErrNoMemory indicates that a manager could not satisfy an allocation
	// or reallocation request. Recoverable: the caller's prior state is left
	// intact unless it already held a raw write pointer.
	ErrNoMemory = errors.New("alloc: out of memory")

	// ErrBadLength indicates a negative or unrepresentably large length.
	ErrBadLength = errors.New("alloc: bad length")

	// ErrLocked indicates an operation that is invalid on a locked buffer,
	// such as sharing it or releasing it before UnlockBuffer.
	ErrLocked = errors.New("alloc: buffer is locked")

	// ErrNotLocked indicates an Unlock without a matching Lock.
	ErrNotLocked = errors.New("alloc: buffer is not locked")

	// ErrShared indicates an attempt to lock a buffer that has more than one
	// holder. Callers fork a private copy first.
	ErrShared = errors.New("alloc: buffer is shared")

	// ErrFreed indicates use of a buffer whose reference count already
	// reached zero.
	ErrFreed = errors.New("alloc: buffer already released")

	// ErrRebind indicates a second BindManager call on a buffer that is
	// already bound.
	ErrRebind = errors.New("alloc: buffer already bound to a manager")

	// ErrClosed indicates an allocation from a manager whose backing
	// resources have been released.
	ErrClosed = errors.New("alloc: manager is closed")
)
