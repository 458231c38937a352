//go:build !unix

package alloc

// mapRegion falls back to garbage-collected storage on platforms without an
// anonymous-mapping path.
func mapRegion(size int) ([]byte, func() error, error) {
	return make([]byte, size), func() error { return nil }, nil
}
