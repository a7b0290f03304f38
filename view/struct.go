package view

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/nativeview/layout"
)

// Struct is a non-owning view over one native record. It is a pointer paired with the layout
// that describes the memory behind it, and is meant to be passed around by value.
//
// The zero Struct is the null view: it stands for an absent record and reports IsNull. Accessing
// fields of the null view panics the way dereferencing a nil pointer does.
//
// A Struct does not keep its memory alive. It is only valid for as long as the allocator that
// produced the memory keeps it.
type Struct struct {
	ptr    unsafe.Pointer
	layout *layout.StructLayout
}

// Wrap creates a view over memory the caller vouches for. No null or alignment check is made.
func Wrap(ptr unsafe.Pointer, l *layout.StructLayout) Struct {
	return Struct{ptr: ptr, layout: l}
}

// UnsafeWrapAddress creates a view over a raw address returned from native code. Nothing about
// the address is checked; a zero address produces the null view.
func UnsafeWrapAddress(address uintptr, l *layout.StructLayout) Struct {
	if address == 0 {
		return Struct{}
	}
	return Struct{ptr: addressToPointer(address), layout: l}
}

// addressToPointer converts a native address into an unsafe.Pointer. Native memory is never
// moved by the Go runtime, so the conversion is stable.
func addressToPointer(address uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&address))
}

// IsNull returns true for the null view
func (s Struct) IsNull() bool { return s.ptr == nil }

// Address returns the record's address for handing to native code. The null view's address is 0.
func (s Struct) Address() uintptr { return uintptr(s.ptr) }

// Pointer returns the record's address as an unsafe.Pointer
func (s Struct) Pointer() unsafe.Pointer { return s.ptr }

// Layout returns the record's layout
func (s Struct) Layout() *layout.StructLayout { return s.layout }

// Bytes returns the record's memory as a byte slice. Writes to the slice are writes to the record.
func (s Struct) Bytes() []byte {
	if s.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(s.ptr), s.layout.Size())
}

// Lookup resolves a field path against the record's layout. It is the error-returning
// counterpart of the accessors, which panic on unknown paths.
func (s Struct) Lookup(path string) (layout.Field, error) {
	return s.layout.Select(path)
}

// UnsafeAs reinterprets the record's memory as a different layout. The caller must know that
// the memory holds a record of that layout, for instance because its tag says so.
func (s Struct) UnsafeAs(l *layout.StructLayout) Struct {
	return Struct{ptr: s.ptr, layout: l}
}

// AutoInit stamps the record's tag field with its default value, if it has one
func (s Struct) AutoInit() {
	tag, ok := s.layout.TagField()
	if !ok || !tag.HasDefault {
		return
	}
	storeUint(s.at(tag), tag.Size, tag.Default)
}

// Zero clears every byte of the record, including the tag
func (s Struct) Zero() {
	clear(s.Bytes())
}

// Tag reads the record's tag field as raw bits. It returns false if the layout has no tag field.
func (s Struct) Tag() (uint64, bool) {
	tag, ok := s.layout.TagField()
	if !ok {
		return 0, false
	}
	return loadUint(s.at(tag), tag.Size), true
}

func (s Struct) at(field layout.Field) unsafe.Pointer {
	return unsafe.Add(s.ptr, field.Offset)
}

// field resolves a path and checks it against the kinds the caller accepts
func (s Struct) field(path string, accept func(layout.Kind) bool, want string) layout.Field {
	field, err := s.layout.Select(path)
	if err != nil {
		panic(err)
	}
	if !accept(field.Kind) {
		panic(errors.Wrapf(ErrKindMismatch, "%s.%s is %s, not %s", s.layout.Name(), path, field.Kind, want))
	}
	return field
}

func isRecord(kind layout.Kind) bool {
	return kind == layout.KindStruct || kind == layout.KindUnion
}

// Struct returns a view aliasing an embedded record. Writes through it are writes to this record.
func (s Struct) Struct(path string) Struct {
	field := s.field(path, isRecord, "a record")
	return Struct{ptr: s.at(field), layout: field.Record}
}

// SetStruct copies src's bytes into an embedded record. src must be exactly the size of the
// embedded record. The embedded record is never rebound to src's memory.
func (s Struct) SetStruct(path string, src Struct) {
	field := s.field(path, isRecord, "a record")
	if src.IsNull() {
		panic(errors.Wrapf(ErrNullView, "cannot copy the null view into %s.%s", s.layout.Name(), path))
	}
	if src.layout.Size() != field.Size {
		panic(errors.Wrapf(ErrKindMismatch, "cannot copy %s (%d bytes) into %s.%s (%d bytes)", src.layout.Name(), src.layout.Size(), s.layout.Name(), path, field.Size))
	}
	copy(unsafe.Slice((*byte)(s.at(field)), field.Size), src.Bytes())
}

// Array returns a view aliasing an inline array of records
func (s Struct) Array(path string) Ptr {
	field := s.field(path, func(kind layout.Kind) bool { return kind == layout.KindArray }, "an array")
	if field.Record == nil {
		panic(errors.Wrapf(ErrKindMismatch, "%s.%s is an array of %s, not of records", s.layout.Name(), path, field.Elem))
	}
	return Ptr{ptr: s.at(field), layout: field.Record, count: field.Count}
}

// FieldBytes returns the bytes of any field as a slice aliasing the record. It is the way to
// reach inline arrays of scalars such as UUIDs and fixed-size names.
func (s Struct) FieldBytes(path string) []byte {
	field, err := s.layout.Select(path)
	if err != nil {
		panic(err)
	}
	return unsafe.Slice((*byte)(s.at(field)), field.Size)
}

func isPointer(kind layout.Kind) bool {
	return kind == layout.KindAddress
}

// Deref follows a pointer field to the record it points at. A null pointer returns false. The
// returned view is sized for a single record of the field's target layout; nothing guarantees
// that the memory it points to is really that record.
func (s Struct) Deref(path string) (Struct, bool) {
	field := s.field(path, isPointer, "a pointer")
	if field.Target == nil {
		panic(errors.Wrapf(ErrKindMismatch, "%s.%s is an untyped address", s.layout.Name(), path))
	}

	return s.deref(field)
}

func (s Struct) deref(field layout.Field) (Struct, bool) {
	address := uintptr(loadUint(s.at(field), field.Size))
	if address == 0 {
		return Struct{}, false
	}
	return Struct{ptr: addressToPointer(address), layout: field.Target}, true
}

// UnsafeDerefArray follows a pointer field to a run of assumedCount records. The count must come
// from somewhere the caller trusts, usually a sibling count field; it is not validated.
func (s Struct) UnsafeDerefArray(path string, assumedCount int) (Ptr, bool) {
	target, ok := s.Deref(path)
	if !ok {
		return Ptr{}, false
	}
	return Ptr{ptr: target.ptr, layout: target.layout, count: assumedCount}, true
}

// SetPointer points a pointer field at target. The null view stores a null pointer.
func (s Struct) SetPointer(path string, target Struct) {
	field := s.field(path, isPointer, "a pointer")
	storeUint(s.at(field), field.Size, uint64(target.Address()))
}

// SetArrayPointer points a pointer field at the first element of target. An empty array view
// stores a null pointer.
func (s Struct) SetArrayPointer(path string, target Ptr) {
	field := s.field(path, isPointer, "a pointer")
	storeUint(s.at(field), field.Size, uint64(target.Address()))
}
