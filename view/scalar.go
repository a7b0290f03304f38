package view

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/nativeview/layout"
)

// Scalar is any Go type that can be stored in a scalar field of the same width
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~uintptr
}

// Get reads a field resolved ahead of time with StructLayout.Select. It is the fast path for hot
// code: the only check made is that T has the field's width.
func Get[T Scalar](s Struct, field layout.Field) T {
	checkWidth[T](field)
	return *(*T)(s.at(field))
}

// Set writes a field resolved ahead of time with StructLayout.Select
func Set[T Scalar](s Struct, field layout.Field, value T) {
	checkWidth[T](field)
	*(*T)(s.at(field)) = value
}

func checkWidth[T Scalar](field layout.Field) {
	var zero T
	if !field.Kind.IsScalar() || int(unsafe.Sizeof(zero)) != field.Size {
		panic(errors.Wrapf(ErrKindMismatch, "%s is a %d byte %s, which cannot be accessed as a %d byte value", field.Name, field.Size, field.Kind, unsafe.Sizeof(zero)))
	}
}

func loadUint(ptr unsafe.Pointer, size int) uint64 {
	switch size {
	case 1:
		return uint64(*(*uint8)(ptr))
	case 2:
		return uint64(*(*uint16)(ptr))
	case 4:
		return uint64(*(*uint32)(ptr))
	case 8:
		return *(*uint64)(ptr)
	default:
		panic(errors.AssertionFailedf("unsupported scalar width %d", size))
	}
}

func loadInt(ptr unsafe.Pointer, size int) int64 {
	switch size {
	case 1:
		return int64(*(*int8)(ptr))
	case 2:
		return int64(*(*int16)(ptr))
	case 4:
		return int64(*(*int32)(ptr))
	case 8:
		return *(*int64)(ptr)
	default:
		panic(errors.AssertionFailedf("unsupported scalar width %d", size))
	}
}

// storeUint writes the low size bytes of value
func storeUint(ptr unsafe.Pointer, size int, value uint64) {
	switch size {
	case 1:
		*(*uint8)(ptr) = uint8(value)
	case 2:
		*(*uint16)(ptr) = uint16(value)
	case 4:
		*(*uint32)(ptr) = uint32(value)
	case 8:
		*(*uint64)(ptr) = value
	default:
		panic(errors.AssertionFailedf("unsupported scalar width %d", size))
	}
}

func isSigned(kind layout.Kind) bool {
	return kind.IsSigned()
}

func isUnsigned(kind layout.Kind) bool {
	return kind.IsUnsigned() && kind != layout.KindAddress
}

func isFloat(kind layout.Kind) bool {
	return kind.IsFloat()
}

func isBool32(kind layout.Kind) bool {
	return kind == layout.KindUint32
}

// Int reads a signed integer field, sign-extended to 64 bits
func (s Struct) Int(path string) int64 {
	field := s.field(path, isSigned, "a signed integer")
	return loadInt(s.at(field), field.Size)
}

// SetInt writes a signed integer field. Values are truncated to the field's width.
func (s Struct) SetInt(path string, value int64) {
	field := s.field(path, isSigned, "a signed integer")
	storeUint(s.at(field), field.Size, uint64(value))
}

// Uint reads an unsigned integer or size field
func (s Struct) Uint(path string) uint64 {
	field := s.field(path, isUnsigned, "an unsigned integer")
	return loadUint(s.at(field), field.Size)
}

// SetUint writes an unsigned integer or size field. Values are truncated to the field's width.
func (s Struct) SetUint(path string, value uint64) {
	field := s.field(path, isUnsigned, "an unsigned integer")
	storeUint(s.at(field), field.Size, value)
}

// Float reads a floating point field
func (s Struct) Float(path string) float64 {
	field := s.field(path, isFloat, "a float")
	if field.Kind == layout.KindFloat32 {
		return float64(*(*float32)(s.at(field)))
	}
	return *(*float64)(s.at(field))
}

// SetFloat writes a floating point field. Float32 fields receive the nearest float32 value.
func (s Struct) SetFloat(path string, value float64) {
	field := s.field(path, isFloat, "a float")
	if field.Kind == layout.KindFloat32 {
		*(*float32)(s.at(field)) = float32(value)
		return
	}
	*(*float64)(s.at(field)) = value
}

// AddressOf reads a pointer field as a raw address
func (s Struct) AddressOf(path string) uintptr {
	field := s.field(path, isPointer, "a pointer")
	return uintptr(loadUint(s.at(field), field.Size))
}

// SetAddress writes a raw address into a pointer field
func (s Struct) SetAddress(path string, address uintptr) {
	field := s.field(path, isPointer, "a pointer")
	storeUint(s.at(field), field.Size, uint64(address))
}

// Bool32 reads a 32-bit boolean field such as VkBool32
func (s Struct) Bool32(path string) bool {
	field := s.field(path, isBool32, "a 32-bit boolean")
	return *(*uint32)(s.at(field)) != 0
}

// SetBool32 writes a 32-bit boolean field as 1 or 0
func (s Struct) SetBool32(path string, value bool) {
	field := s.field(path, isBool32, "a 32-bit boolean")
	var bits uint32
	if value {
		bits = 1
	}
	*(*uint32)(s.at(field)) = bits
}
