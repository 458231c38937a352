// Package cowstr implements a reference-counted, copy-on-write string value
// on top of the alloc.Manager contract.
//
// # Overview
//
// A String holds exactly one reference to an alloc.Buffer. Copying a string
// (Assign, Clone) shares the buffer by bumping its reference count, so copies
// are O(1); any write first prepares the buffer, forking a private copy when
// it is shared and growing it when it is too small. Growth is exponential
// (factor 1.5) until the 1Gi-unit threshold and linear (1Mi units) beyond it.
//
// Empty strings bind to their manager's nil singleton, a shared immortal
// buffer, so default construction allocates nothing.
//
// # Raw buffer access
//
// GetBuffer returns the writable backing storage after write preparation;
// the caller commits a final length with ReleaseBuffer (terminator scan) or
// ReleaseBufferSetLength. BufScope packages that pairing so the commit runs
// on every exit path:
//
//	sb, err := cowstr.AcquireLen(s, 64, nil)
//	if err != nil {
//	    return err
//	}
//	defer sb.Release()
//	n := produce(sb.Units())
//	sb.SetLength(n)
//
// LockBuffer marks the buffer exclusive while a raw pointer is handed to
// code outside the string's control; UnlockBuffer reverses it. A locked
// buffer is never shared: assignment into or out of it copies content.
//
// # Concurrency
//
// String values are not safe for concurrent mutation. Sharing is: because
// reference counts are atomic, String values on different goroutines may
// hold the same buffer and read it without coordination, and whichever
// holder mutates first forks its own private copy.
package cowstr
