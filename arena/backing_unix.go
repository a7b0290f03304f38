//go:build unix

package arena

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

func mapMemory(size int) ([]byte, unsafe.Pointer, error) {
	mapped, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to map %d bytes", size)
	}

	return mapped, unsafe.Pointer(unsafe.SliceData(mapped)), nil
}

func unmapMemory(mapped []byte) error {
	return unix.Munmap(mapped)
}
