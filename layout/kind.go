package layout

import "fmt"

// Kind is the primitive or aggregate type of a field
type Kind int

const (
	KindInvalid Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	// KindAddress is a native pointer. Its width comes from the ABI.
	KindAddress
	// KindCSizeT is a native size_t. Its width comes from the ABI.
	KindCSizeT
	KindStruct
	KindUnion
	KindArray
)

var kindMapping = map[Kind]string{
	KindInvalid: "Invalid",
	KindInt8:    "Int8",
	KindInt16:   "Int16",
	KindInt32:   "Int32",
	KindInt64:   "Int64",
	KindUint8:   "Uint8",
	KindUint16:  "Uint16",
	KindUint32:  "Uint32",
	KindUint64:  "Uint64",
	KindFloat32: "Float32",
	KindFloat64: "Float64",
	KindAddress: "Address",
	KindCSizeT:  "CSizeT",
	KindStruct:  "Struct",
	KindUnion:   "Union",
	KindArray:   "Array",
}

func (k Kind) String() string {
	str, ok := kindMapping[k]
	if !ok {
		return fmt.Sprintf("UNKNOWN(%d)", int(k))
	}
	return str
}

// IsScalar returns true for kinds that are read and written as a single number
func (k Kind) IsScalar() bool {
	return k >= KindInt8 && k <= KindCSizeT
}

// IsSigned returns true for the signed integer kinds
func (k Kind) IsSigned() bool {
	return k >= KindInt8 && k <= KindInt64
}

// IsUnsigned returns true for the unsigned integer kinds, including addresses and sizes
func (k Kind) IsUnsigned() bool {
	return (k >= KindUint8 && k <= KindUint64) || k == KindAddress || k == KindCSizeT
}

// IsFloat returns true for the floating point kinds
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}
