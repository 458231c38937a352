package buf

import "unsafe"

// AliasOffset reports whether src's backing storage starts inside dst's, and
// if so at which element offset. String operations use this to detect
// self-referential sources (appending a substring of the destination to
// itself) before write preparation relocates or forks the storage.
//
// The comparison is pointer-range based: it never dereferences either slice
// and is meaningful only while both slices are alive.
func AliasOffset[C any](dst, src []C) (int, bool) {
	if len(dst) == 0 || len(src) == 0 {
		return 0, false
	}
	size := unsafe.Sizeof(dst[0])
	d0 := uintptr(unsafe.Pointer(unsafe.SliceData(dst)))
	dEnd := d0 + uintptr(len(dst))*size
	s0 := uintptr(unsafe.Pointer(unsafe.SliceData(src)))
	if s0 < d0 || s0 >= dEnd {
		return 0, false
	}
	return int((s0 - d0) / uintptr(size)), true
}
