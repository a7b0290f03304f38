package layout

import (
	"runtime"
	"unsafe"
)

// ABI describes the parts of a native target's C calling convention that affect record layout
type ABI struct {
	Name string
	// PointerSize is the size and alignment of KindAddress fields
	PointerSize int
	// SizeTSize is the size and alignment of KindCSizeT fields
	SizeTSize int
	// Int64Align is the alignment of 8-byte scalars. It is 4 on i386 System V and 8 nearly everywhere else.
	Int64Align int
}

var (
	// ABI64 is the LP64 layout used by 64-bit unix and the LLP64 layout used by 64-bit windows, which
	// agree on everything a record descriptor can express
	ABI64 = ABI{Name: "64", PointerSize: 8, SizeTSize: 8, Int64Align: 8}
	// ABI32 is the ILP32 layout used by 32-bit ARM and most other 32-bit targets
	ABI32 = ABI{Name: "32", PointerSize: 4, SizeTSize: 4, Int64Align: 8}
	// ABI386 is the i386 System V layout, which aligns 8-byte scalars to 4 inside records
	ABI386 = ABI{Name: "386", PointerSize: 4, SizeTSize: 4, Int64Align: 4}
	// ABIWasm32 is the wasm32 C layout
	ABIWasm32 = ABI{Name: "wasm32", PointerSize: 4, SizeTSize: 4, Int64Align: 8}

	// HostABI is the ABI of the running program
	HostABI = hostABI()
)

func hostABI() ABI {
	if unsafe.Sizeof(uintptr(0)) == 8 {
		return ABI64
	}
	if runtime.GOARCH == "386" {
		return ABI386
	}
	return ABI32
}

// scalarInfo returns the size and alignment of a scalar kind on this ABI
func (abi ABI) scalarInfo(kind Kind) (size int, align int) {
	switch kind {
	case KindInt8, KindUint8:
		return 1, 1
	case KindInt16, KindUint16:
		return 2, 2
	case KindInt32, KindUint32, KindFloat32:
		return 4, 4
	case KindInt64, KindUint64, KindFloat64:
		return 8, abi.Int64Align
	case KindAddress:
		return abi.PointerSize, abi.PointerSize
	case KindCSizeT:
		return abi.SizeTSize, abi.SizeTSize
	default:
		return 0, 0
	}
}
