package arena

import (
	"unsafe"

	"github.com/vkngwrapper/nativeview/memutils"
)

// allocateHeap returns a zeroed heap buffer with room for size bytes starting on a MaxAlignment
// boundary, along with a pointer to that boundary. The buffer must be kept alive for as long as
// the pointer is in use.
func allocateHeap(size int) ([]byte, unsafe.Pointer) {
	buffer := make([]byte, size+int(MaxAlignment))
	base := unsafe.Pointer(unsafe.SliceData(buffer))
	aligned := memutils.AlignUpAddress(uintptr(base), MaxAlignment)

	return buffer, unsafe.Add(base, aligned-uintptr(base))
}
