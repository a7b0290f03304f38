//go:build debug_mem_utils

package memutils

import "unsafe"

const (
	// DebugMargin is the number of bytes of debug data that should be placed after each allocation
	// in blocks managed by memutils
	DebugMargin int = 16
	// corruptionDetectionMagicValue is a 4-byte pattern repeated across the debug margin
	corruptionDetectionMagicValue uint32 = 0x7F84E666
)

const magicWordSize = int(unsafe.Sizeof(uint32(0)))

// WriteMagicValue writes an easy-to-identify marker across DebugMargin bytes at the provided pointer and offset.
func WriteMagicValue(data unsafe.Pointer, offset int) {
	for i := 0; i < DebugMargin; i += magicWordSize {
		*(*uint32)(unsafe.Add(data, offset+i)) = corruptionDetectionMagicValue
	}
}

// ValidateMagicValue verifies that the marker written by WriteMagicValue is still present.
// It returns true if the value is still present and false otherwise.
func ValidateMagicValue(data unsafe.Pointer, offset int) bool {
	for i := 0; i < DebugMargin; i += magicWordSize {
		if *(*uint32)(unsafe.Add(data, offset+i)) != corruptionDetectionMagicValue {
			return false
		}
	}

	return true
}

// DebugValidate will call Validate on the provided object and panics if any errors are returned.
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}

// DebugCheckPow2 will verify that the numerical value passed in is a power of two, and panics if it is not.
func DebugCheckPow2[T Number](value T, name string) {
	err := CheckPow2[T](value, name)
	if err != nil {
		panic(err)
	}
}
