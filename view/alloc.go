package view

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/nativeview/layout"
)

func checkHostLayout(l *layout.StructLayout) error {
	if l == nil {
		return errors.New("cannot allocate a record without a layout")
	}
	if l.ABI() != layout.HostABI {
		return errors.Newf("%s was laid out for ABI %s, but this program runs on ABI %s", l.Name(), l.ABI().Name, layout.HostABI.Name)
	}
	return nil
}

// Allocate obtains memory for one record from alloc and stamps its tag field. The rest of the
// record is zeroed only if alloc zeroes memory.
func Allocate(alloc Allocator, l *layout.StructLayout) (Struct, error) {
	err := checkHostLayout(l)
	if err != nil {
		return Struct{}, err
	}

	ptr, err := alloc.Allocate(l.Size(), uint(l.Align()))
	if err != nil {
		return Struct{}, errors.Wrapf(err, "allocating %s", l.Name())
	}

	s := Wrap(ptr, l)
	s.AutoInit()
	return s, nil
}

// AllocateArray obtains memory for count contiguous records from alloc and stamps the tag field of
// every element
func AllocateArray(alloc Allocator, l *layout.StructLayout, count int) (Ptr, error) {
	err := checkHostLayout(l)
	if err != nil {
		return Ptr{}, err
	}
	if count <= 0 {
		return Ptr{}, errors.Wrapf(ErrOutOfBounds, "cannot allocate an array of %d %s", count, l.Name())
	}

	ptr, err := alloc.AllocateArray(l.Size(), uint(l.Align()), count)
	if err != nil {
		return Ptr{}, errors.Wrapf(err, "allocating %d %s", count, l.Name())
	}

	array := WrapArray(ptr, l, count)
	if _, tagged := l.TagField(); tagged {
		for element := range array.All() {
			element.AutoInit()
		}
	}
	return array, nil
}

// Clone obtains memory for one record from alloc and copies src into it. Pointer fields are
// copied as addresses; nothing they point to is cloned.
func Clone(alloc Allocator, src Struct) (Struct, error) {
	if src.IsNull() {
		return Struct{}, errors.Wrap(ErrNullView, "cannot clone the null view")
	}

	ptr, err := alloc.Allocate(src.layout.Size(), uint(src.layout.Align()))
	if err != nil {
		return Struct{}, errors.Wrapf(err, "cloning %s", src.layout.Name())
	}

	copy(unsafe.Slice((*byte)(ptr), src.layout.Size()), src.Bytes())
	return Wrap(ptr, src.layout), nil
}
