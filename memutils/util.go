package memutils

import (
	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Number is any integer type that byte counts, offsets, and alignments are expressed in
type Number interface {
	constraints.Integer
}

// CheckPow2 returns a wrapped PowerOfTwoError if number is not a positive power of two. name is used
// to identify the offending value in the error message.
func CheckPow2[T Number](number T, name string) error {
	if number <= 0 || number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// CheckAligned returns a wrapped AlignmentError if value is not a multiple of alignment. alignment
// must be a power of two.
func CheckAligned[T Number](value T, alignment T, name string) error {
	if value&(alignment-1) != 0 {
		return cerrors.Wrapf(AlignmentError, "%s is %d, which is not a multiple of %d", name, value, alignment)
	}
	return nil
}

func AlignUp(value int, alignment uint) int {
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

// AlignUpAddress rounds a raw address up to the next multiple of alignment
func AlignUpAddress(address uintptr, alignment uint) uintptr {
	return (address + uintptr(alignment) - 1) &^ (uintptr(alignment) - 1)
}

// Padding returns the number of bytes that must follow value for the next byte to sit on an
// alignment boundary
func Padding(value int, alignment uint) int {
	return AlignUp(value, alignment) - value
}
