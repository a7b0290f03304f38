//go:build !unix

package arena

import (
	"runtime"
	"unsafe"

	"github.com/cockroachdb/errors"
)

func mapMemory(size int) ([]byte, unsafe.Pointer, error) {
	return nil, nil, errors.Newf("mapped arena backing is not supported on %s", runtime.GOOS)
}

func unmapMemory(mapped []byte) error {
	return errors.Newf("mapped arena backing is not supported on %s", runtime.GOOS)
}
