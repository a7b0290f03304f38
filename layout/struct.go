package layout

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/nativeview/memutils"
)

// StructLayout is the immutable description of one native record: a struct or a union. It is
// built once, usually into a package-level variable, and shared by every view of that record.
type StructLayout struct {
	name  string
	kind  Kind
	abi   ABI
	size  int
	align int

	fields []Field
	index  *swiss.Map[string, int]

	tag   *Field
	chain *Field
}

// NewStruct lays out a C struct for the running program's ABI
func NewStruct(name string, fields ...Field) (*StructLayout, error) {
	return HostABI.Struct(name, fields...)
}

// NewUnion lays out a C union for the running program's ABI
func NewUnion(name string, fields ...Field) (*StructLayout, error) {
	return HostABI.Union(name, fields...)
}

// MustStruct is NewStruct for package-level layout tables. It panics if the fields cannot be laid out.
func MustStruct(name string, fields ...Field) *StructLayout {
	l, err := NewStruct(name, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

// MustUnion is NewUnion for package-level layout tables. It panics if the fields cannot be laid out.
func MustUnion(name string, fields ...Field) *StructLayout {
	l, err := NewUnion(name, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

// Struct lays out a C struct: fields are placed in declaration order, each at the next offset
// satisfying its alignment, and the record is padded to a multiple of its largest alignment.
func (abi ABI) Struct(name string, fields ...Field) (*StructLayout, error) {
	return abi.layoutRecord(name, KindStruct, fields)
}

// Union lays out a C union: every field is placed at offset zero and the record is as large as
// its largest field, padded to a multiple of its largest alignment.
func (abi ABI) Union(name string, fields ...Field) (*StructLayout, error) {
	return abi.layoutRecord(name, KindUnion, fields)
}

func invalidf(record string, format string, args ...any) error {
	return errors.Wrapf(ErrInvalidLayout, "%s: "+format, append([]any{record}, args...)...)
}

func (abi ABI) layoutRecord(name string, kind Kind, fields []Field) (*StructLayout, error) {
	if len(fields) == 0 {
		return nil, invalidf(name, "record has no fields")
	}

	l := &StructLayout{
		name:   name,
		kind:   kind,
		abi:    abi,
		fields: make([]Field, 0, len(fields)),
		index:  swiss.NewMap[string, int](uint32(len(fields))),
	}

	end := 0
	maxAlign := 1

	for _, field := range fields {
		if field.Name == "" {
			return nil, invalidf(name, "field %d has no name", len(l.fields))
		}
		if _, exists := l.index.Get(field.Name); exists {
			return nil, invalidf(name, "field %s is declared more than once", field.Name)
		}

		err := abi.measure(name, &field)
		if err != nil {
			return nil, err
		}

		switch {
		case kind == KindUnion:
			if field.explicit && field.Offset != 0 {
				return nil, invalidf(name, "union member %s is placed at offset %d", field.Name, field.Offset)
			}
			field.Offset = 0
		case field.explicit:
			err = memutils.CheckAligned(field.Offset, field.Align, field.Name)
			if err != nil {
				return nil, invalidf(name, "%v", err)
			}
			if field.Offset < end {
				return nil, invalidf(name, "field %s at offset %d overlaps the previous field, which ends at %d", field.Name, field.Offset, end)
			}
		default:
			field.Offset = end + memutils.Padding(end, uint(field.Align))
		}

		if kind == KindStruct {
			end = field.Offset + field.Size
		}
		l.size = max(l.size, field.Offset+field.Size)
		maxAlign = max(maxAlign, field.Align)

		err = l.assignRole(field)
		if err != nil {
			return nil, err
		}

		l.index.Put(field.Name, len(l.fields))
		l.fields = append(l.fields, field)
	}

	memutils.DebugCheckPow2(maxAlign, "align")
	l.align = maxAlign
	l.size += memutils.Padding(l.size, uint(maxAlign))

	if l.chain != nil && l.chain.Target == nil {
		l.chain.Target = l
		if index, ok := l.index.Get(l.chain.Name); ok {
			l.fields[index].Target = l
		}
	}

	memutils.DebugValidate(l)
	return l, nil
}

// measure fills in the size and alignment of a declared field
func (abi ABI) measure(record string, field *Field) error {
	if field.tagged && field.Kind != KindStruct && field.Kind != KindUnion {
		return invalidf(record, "field %s is tagged, but is not a nested record", field.Name)
	}

	switch {
	case field.Kind.IsScalar():
		field.Size, field.Align = abi.scalarInfo(field.Kind)

	case field.Kind == KindStruct || field.Kind == KindUnion:
		if field.Record == nil {
			return invalidf(record, "nested field %s has no layout", field.Name)
		}
		if field.Record.abi != abi {
			return invalidf(record, "nested field %s was laid out for ABI %s, not %s", field.Name, field.Record.abi.Name, abi.Name)
		}
		field.Size, field.Align = field.Record.size, field.Record.align

		if field.tagged && field.Record.tag == nil {
			return invalidf(record, "nested field %s is tagged, but %s has no tag field", field.Name, field.Record.name)
		}

	case field.Kind == KindArray:
		if field.Count <= 0 {
			return invalidf(record, "array field %s has length %d", field.Name, field.Count)
		}

		var elemSize, elemAlign int
		switch {
		case field.Elem == KindStruct || field.Elem == KindUnion:
			if field.Record == nil {
				return invalidf(record, "array field %s has no element layout", field.Name)
			}
			if field.Record.abi != abi {
				return invalidf(record, "array field %s was laid out for ABI %s, not %s", field.Name, field.Record.abi.Name, abi.Name)
			}
			elemSize, elemAlign = field.Record.size, field.Record.align
		case field.Elem.IsScalar():
			elemSize, elemAlign = abi.scalarInfo(field.Elem)
		default:
			return invalidf(record, "array field %s has element kind %s", field.Name, field.Elem)
		}

		field.Size, field.Align = elemSize*field.Count, elemAlign

	default:
		return invalidf(record, "field %s has kind %s", field.Name, field.Kind)
	}

	err := memutils.CheckPow2(field.Align, field.Name)
	if err != nil {
		return invalidf(record, "%v", err)
	}
	return nil
}

func (l *StructLayout) assignRole(field Field) error {
	switch field.role {
	case roleTag:
		if !field.Kind.IsSigned() && !(field.Kind.IsUnsigned() && field.Kind != KindAddress) {
			return invalidf(l.name, "tag field %s must be an integer, but is %s", field.Name, field.Kind)
		}
		return l.setTag(field)
	case roleChain:
		return l.setChain(field)
	}

	if !field.tagged {
		return nil
	}

	// Promote the nested record's header to this record, at absolute offsets
	tag := *field.Record.tag
	tag.Name = field.Name + "." + tag.Name
	tag.Offset += field.Offset
	tag.Default = field.Default
	tag.HasDefault = true
	err := l.setTag(tag)
	if err != nil {
		return err
	}

	if field.Record.chain != nil {
		chain := *field.Record.chain
		chain.Name = field.Name + "." + chain.Name
		chain.Offset += field.Offset
		return l.setChain(chain)
	}

	return nil
}

func (l *StructLayout) setTag(field Field) error {
	if l.tag != nil {
		return invalidf(l.name, "record has two tag fields, %s and %s", l.tag.Name, field.Name)
	}
	l.tag = &field
	return nil
}

func (l *StructLayout) setChain(field Field) error {
	if l.chain != nil {
		return invalidf(l.name, "record has two chain fields, %s and %s", l.chain.Name, field.Name)
	}
	l.chain = &field
	return nil
}

// Name returns the native name of the record
func (l *StructLayout) Name() string { return l.name }

// Kind returns KindStruct or KindUnion
func (l *StructLayout) Kind() Kind { return l.kind }

// ABI returns the ABI the record was laid out for
func (l *StructLayout) ABI() ABI { return l.abi }

// Size returns the size of the record in bytes, including trailing padding
func (l *StructLayout) Size() int { return l.size }

// Align returns the alignment the record requires
func (l *StructLayout) Align() int { return l.align }

// NumFields returns the number of top-level fields
func (l *StructLayout) NumFields() int { return len(l.fields) }

// Fields returns a copy of the record's top-level fields in declaration order
func (l *StructLayout) Fields() []Field {
	return slices.Clone(l.fields)
}

// Field looks up a top-level field by name
func (l *StructLayout) Field(name string) (Field, bool) {
	index, ok := l.index.Get(name)
	if !ok {
		return Field{}, false
	}
	return l.fields[index], true
}

// Offset returns the byte offset of a field path within the record. See Select for the path syntax.
func (l *StructLayout) Offset(path string) (int, error) {
	field, err := l.Select(path)
	if err != nil {
		return 0, err
	}
	return field.Offset, nil
}

// TagField returns the record's discriminant, at its absolute offset, if it has one
func (l *StructLayout) TagField() (Field, bool) {
	if l.tag == nil {
		return Field{}, false
	}
	return *l.tag, true
}

// ChainField returns the record's extension chain link, at its absolute offset, if it has one.
// The returned field's Target is the base layout shared by every record in the chain.
func (l *StructLayout) ChainField() (Field, bool) {
	if l.chain == nil {
		return Field{}, false
	}
	return *l.chain, true
}

func (l *StructLayout) String() string {
	return l.kind.String() + " " + l.name
}

// Validate checks the layout invariants: the size is a positive multiple of the alignment, every
// field lies within the record, and struct fields do not overlap.
func (l *StructLayout) Validate() error {
	if l.size <= 0 {
		return errors.Newf("%s has size %d", l.name, l.size)
	}
	if l.size%l.align != 0 {
		return errors.Newf("%s has size %d, which is not a multiple of its alignment %d", l.name, l.size, l.align)
	}

	end := 0
	for _, field := range l.fields {
		if field.Offset < 0 || field.Offset+field.Size > l.size {
			return errors.Newf("%s.%s occupies [%d, %d), which is outside the record", l.name, field.Name, field.Offset, field.Offset+field.Size)
		}
		if field.Offset%field.Align != 0 {
			return errors.Newf("%s.%s at offset %d is not aligned to %d", l.name, field.Name, field.Offset, field.Align)
		}
		if l.kind == KindStruct {
			if field.Offset < end {
				return errors.Newf("%s.%s at offset %d overlaps the previous field", l.name, field.Name, field.Offset)
			}
			end = field.Offset + field.Size
		}
	}

	if l.index.Count() != len(l.fields) {
		return errors.Newf("%s indexes %d fields but declares %d", l.name, l.index.Count(), len(l.fields))
	}

	return nil
}
