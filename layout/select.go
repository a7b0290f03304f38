package layout

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Select resolves a field path to a Field whose Offset is relative to the start of this record.
// A path is a dotted list of field names that descends through nested records, and any name may
// be followed by an index into an inline array: "srcOffsets[1].x", "blendConstants[2]". Selecting
// an array element yields a field of the element's kind.
func (l *StructLayout) Select(path string) (Field, error) {
	if path == "" {
		return Field{}, errors.Wrapf(ErrUnknownField, "%s: empty field path", l.name)
	}

	current := l
	offset := 0
	rest := path

	for {
		segment, remaining, more := strings.Cut(rest, ".")

		name, index, hasIndex, err := parseSegment(segment)
		if err != nil {
			return Field{}, errors.Wrapf(err, "%s: field path %q", l.name, path)
		}

		field, ok := current.Field(name)
		if !ok {
			return Field{}, errors.Wrapf(ErrUnknownField, "%s: field path %q: %s has no field %s", l.name, path, current.name, name)
		}
		field.Offset += offset

		if hasIndex {
			if field.Kind != KindArray {
				return Field{}, errors.Wrapf(ErrUnknownField, "%s: field path %q: %s is not an array", l.name, path, name)
			}
			if index < 0 || index >= field.Count {
				return Field{}, errors.Wrapf(ErrUnknownField, "%s: field path %q: index %d is outside array of length %d", l.name, path, index, field.Count)
			}

			field = elementField(field, index)
		}

		if !more {
			field.Name = path
			return field, nil
		}

		if field.Kind != KindStruct && field.Kind != KindUnion {
			return Field{}, errors.Wrapf(ErrUnknownField, "%s: field path %q: %s is a %s, not a record", l.name, path, segment, field.Kind)
		}

		current = field.Record
		offset = field.Offset
		rest = remaining
	}
}

// MustSelect is Select for package-level selections. It panics if the path cannot be resolved.
func (l *StructLayout) MustSelect(path string) Field {
	field, err := l.Select(path)
	if err != nil {
		panic(err)
	}
	return field
}

func elementField(array Field, index int) Field {
	size := array.ElementSize()
	element := Field{
		Name:   array.Name + "[" + strconv.Itoa(index) + "]",
		Kind:   array.Elem,
		Offset: array.Offset + index*size,
		Size:   size,
		Align:  array.Align,
	}
	if array.Elem == KindStruct || array.Elem == KindUnion {
		element.Record = array.Record
	}
	return element
}

func parseSegment(segment string) (name string, index int, hasIndex bool, err error) {
	open := strings.IndexByte(segment, '[')
	if open < 0 {
		if segment == "" {
			return "", 0, false, errors.Wrap(ErrUnknownField, "empty path segment")
		}
		return segment, 0, false, nil
	}

	if open == 0 || !strings.HasSuffix(segment, "]") {
		return "", 0, false, errors.Wrapf(ErrUnknownField, "malformed path segment %q", segment)
	}

	index, err = strconv.Atoi(segment[open+1 : len(segment)-1])
	if err != nil {
		return "", 0, false, errors.Wrapf(ErrUnknownField, "malformed index in path segment %q", segment)
	}

	return segment[:open], index, true, nil
}
