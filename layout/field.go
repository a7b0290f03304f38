package layout

type fieldRole int

const (
	rolePlain fieldRole = iota
	// roleTag marks the discriminant that identifies a record's variant to native code
	roleTag
	// roleChain marks the address of the next record in an extension chain
	roleChain
)

// Field is one member of a record. Fields are declared with the constructors in this package and
// placed by ABI.Struct or ABI.Union, which fill in Offset, Size, and Align.
type Field struct {
	Name   string
	Kind   Kind
	Offset int
	Size   int
	Align  int

	// Elem and Count describe the elements of a KindArray field. Elem is KindStruct or KindUnion
	// for arrays of records, in which case Record is the element layout.
	Elem  Kind
	Count int

	// Record is the layout of a KindStruct or KindUnion field, or of the elements of an array of records
	Record *StructLayout
	// Target is the layout a KindAddress field points at, when it is known
	Target *StructLayout

	// Default is the value written to a tag field when a record is auto-initialized
	Default    uint64
	HasDefault bool

	role     fieldRole
	explicit bool
	// tagged is set on nested fields whose own tag field should receive Default
	tagged bool
}

// At pins the field to an explicit byte offset. The offset is validated against the ABI's
// alignment rules and the preceding fields rather than computed.
func (f Field) At(offset int) Field {
	f.Offset = offset
	f.explicit = true
	return f
}

// Tagged sets the default for the tag field inside a nested record. It is how a record that
// embeds its chain header at offset zero, as WebGPU records do, declares its own variant tag.
func (f Field) Tagged(value uint64) Field {
	f.Default = value
	f.HasDefault = true
	f.tagged = true
	return f
}

// IsTag returns true if this field is the record's discriminant
func (f *Field) IsTag() bool {
	return f.role == roleTag
}

// IsChain returns true if this field is the record's extension chain link
func (f *Field) IsChain() bool {
	return f.role == roleChain
}

// ElementSize returns the stride of a KindArray field's elements
func (f *Field) ElementSize() int {
	if f.Kind != KindArray || f.Count == 0 {
		return 0
	}
	return f.Size / f.Count
}

func scalar(name string, kind Kind) Field {
	return Field{Name: name, Kind: kind}
}

func Int8(name string) Field    { return scalar(name, KindInt8) }
func Int16(name string) Field   { return scalar(name, KindInt16) }
func Int32(name string) Field   { return scalar(name, KindInt32) }
func Int64(name string) Field   { return scalar(name, KindInt64) }
func Uint8(name string) Field   { return scalar(name, KindUint8) }
func Uint16(name string) Field  { return scalar(name, KindUint16) }
func Uint32(name string) Field  { return scalar(name, KindUint32) }
func Uint64(name string) Field  { return scalar(name, KindUint64) }
func Float32(name string) Field { return scalar(name, KindFloat32) }
func Float64(name string) Field { return scalar(name, KindFloat64) }
func CSizeT(name string) Field  { return scalar(name, KindCSizeT) }

// Address declares an untyped native pointer field
func Address(name string) Field { return scalar(name, KindAddress) }

// Pointer declares a native pointer field to one or more records of the target layout. A null
// pointer reads back as absent.
func Pointer(name string, target *StructLayout) Field {
	return Field{Name: name, Kind: KindAddress, Target: target}
}

// Nested declares a record embedded inline
func Nested(name string, record *StructLayout) Field {
	f := Field{Name: name, Kind: KindStruct, Record: record}
	if record != nil {
		f.Kind = record.Kind()
	}
	return f
}

// ArrayOf declares a fixed-length inline array of scalars
func ArrayOf(name string, elem Kind, count int) Field {
	return Field{Name: name, Kind: KindArray, Elem: elem, Count: count}
}

// RecordArray declares a fixed-length inline array of records
func RecordArray(name string, record *StructLayout, count int) Field {
	f := Field{Name: name, Kind: KindArray, Elem: KindStruct, Count: count, Record: record}
	if record != nil {
		f.Elem = record.Kind()
	}
	return f
}

// Tag declares an integer discriminant that is stamped with value whenever a record of this
// layout is allocated or auto-initialized
func Tag(name string, kind Kind, value uint64) Field {
	return Field{Name: name, Kind: kind, role: roleTag, Default: value, HasDefault: true}
}

// Discriminant declares an integer discriminant with no fixed value. It is used by base layouts
// that stand in for a whole family of tagged records.
func Discriminant(name string, kind Kind) Field {
	return Field{Name: name, Kind: kind, role: roleTag}
}

// Chain declares the address of the next record in an extension chain. base is the layout every
// record in the chain starts with. A nil base means the record being declared is itself the base.
func Chain(name string, base *StructLayout) Field {
	return Field{Name: name, Kind: KindAddress, Target: base, role: roleChain}
}
