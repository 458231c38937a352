//go:build unix

package alloc

import "golang.org/x/sys/unix"

// mapRegion reserves size bytes of anonymous memory outside the Go heap.
func mapRegion(size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return unix.Munmap(data) }, nil
}
