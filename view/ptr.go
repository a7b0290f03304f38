package view

import (
	"iter"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/nativeview/layout"
)

// Ptr is a non-owning view over a run of contiguous records that share a layout. Like Struct, it
// is passed by value and is only valid while the memory behind it is.
//
// The zero Ptr is an empty view with no backing memory.
type Ptr struct {
	ptr    unsafe.Pointer
	layout *layout.StructLayout
	count  int
}

// WrapArray creates a view over count records starting at ptr. Nothing is checked.
func WrapArray(ptr unsafe.Pointer, l *layout.StructLayout, count int) Ptr {
	return Ptr{ptr: ptr, layout: l, count: count}
}

// UnsafeWrapArrayAddress creates a view over count records starting at a raw address returned from
// native code. Nothing is checked; a zero address produces an empty view.
func UnsafeWrapArrayAddress(address uintptr, l *layout.StructLayout, count int) Ptr {
	if address == 0 {
		return Ptr{layout: l}
	}
	return Ptr{ptr: addressToPointer(address), layout: l, count: count}
}

// Len returns the number of records in the view
func (p Ptr) Len() int { return p.count }

// ByteLen returns the number of bytes the view covers
func (p Ptr) ByteLen() int {
	if p.layout == nil {
		return 0
	}
	return p.count * p.layout.Size()
}

// Address returns the address of the first record for handing to native code
func (p Ptr) Address() uintptr { return uintptr(p.ptr) }

// Pointer returns the address of the first record as an unsafe.Pointer
func (p Ptr) Pointer() unsafe.Pointer { return p.ptr }

// Layout returns the layout of the view's elements
func (p Ptr) Layout() *layout.StructLayout { return p.layout }

// Bytes returns the view's memory as a byte slice
func (p Ptr) Bytes() []byte {
	if p.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p.ptr), p.ByteLen())
}

// At returns a view aliasing element index. It panics with ErrOutOfBounds if index is not in
// [0, Len()), the way indexing a slice does.
func (p Ptr) At(index int) Struct {
	if index < 0 || index >= p.count {
		panic(errors.Wrapf(ErrOutOfBounds, "index %d in array of length %d", index, p.count))
	}
	return p.UnsafeAt(index)
}

// UnsafeAt returns a view aliasing element index without a bounds check. An index outside the
// backing memory produces a view over memory that is not part of the array.
func (p Ptr) UnsafeAt(index int) Struct {
	return Struct{ptr: unsafe.Add(p.ptr, index*p.layout.Size()), layout: p.layout}
}

// Write copies src's bytes into element index. src must be exactly the element size.
func (p Ptr) Write(index int, src Struct) error {
	if index < 0 || index >= p.count {
		return errors.Wrapf(ErrOutOfBounds, "index %d in array of length %d", index, p.count)
	}
	if src.IsNull() {
		return errors.Wrapf(ErrNullView, "cannot write the null view into element %d", index)
	}
	if src.layout.Size() != p.layout.Size() {
		return errors.Wrapf(ErrKindMismatch, "cannot write %s (%d bytes) into an array of %s (%d bytes)", src.layout.Name(), src.layout.Size(), p.layout.Name(), p.layout.Size())
	}

	copy(p.UnsafeAt(index).Bytes(), src.Bytes())
	return nil
}

// Slice returns a view of elements [start, end). It fails with ErrOutOfBounds unless
// 0 <= start <= end <= Len().
func (p Ptr) Slice(start, end int) (Ptr, error) {
	if start < 0 || start > end || end > p.count {
		return Ptr{}, errors.Wrapf(ErrOutOfBounds, "range [%d, %d) in array of length %d", start, end, p.count)
	}
	if p.layout == nil {
		return Ptr{}, nil
	}

	return Ptr{ptr: unsafe.Add(p.ptr, start*p.layout.Size()), layout: p.layout, count: end - start}, nil
}

// Head returns a view of the first end elements
func (p Ptr) Head(end int) (Ptr, error) {
	return p.Slice(0, end)
}

// Offset returns a view starting at element n and running to the end of this view
func (p Ptr) Offset(n int) (Ptr, error) {
	return p.Slice(n, p.count)
}

// UnsafeReinterpret returns a view over the same address holding count elements. Nothing checks
// that the backing memory is that large. It exists for native results that report an address and
// a count separately.
func (p Ptr) UnsafeReinterpret(count int) Ptr {
	return Ptr{ptr: p.ptr, layout: p.layout, count: count}
}

// All returns a sequence of views over each element in order. The sequence can be ranged over
// any number of times.
func (p Ptr) All() iter.Seq[Struct] {
	return func(yield func(Struct) bool) {
		for _, element := range p.Enumerate() {
			if !yield(element) {
				return
			}
		}
	}
}

// Enumerate returns a sequence of index and view pairs over each element in order
func (p Ptr) Enumerate() iter.Seq2[int, Struct] {
	return func(yield func(int, Struct) bool) {
		if p.layout == nil || p.ptr == nil {
			return
		}

		size := p.layout.Size()
		byteLen := p.ByteLen()
		for index, offset := 0, 0; offset+size <= byteLen; index, offset = index+1, offset+size {
			if !yield(index, Struct{ptr: unsafe.Add(p.ptr, offset), layout: p.layout}) {
				return
			}
		}
	}
}

// ToSlice returns a view over every element. The views alias the array.
func (p Ptr) ToSlice() []Struct {
	result := make([]Struct, 0, p.count)
	for element := range p.All() {
		result = append(result, element)
	}
	return result
}
