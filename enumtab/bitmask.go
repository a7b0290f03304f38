package enumtab

import (
	"fmt"
	"strings"

	"github.com/vkngwrapper/core/v2/common"
)

// Bitmask explains native flag words. Known bits are named with a core flag string mapping and
// any bits left over are reported as UNKNOWN.
type Bitmask[T ~int32] struct {
	register func(T, string)
	toString func(T) string
	known    T
}

// NewBitmask creates an empty Bitmask
func NewBitmask[T ~int32]() *Bitmask[T] {
	mapping := common.NewFlagStringMapping[T]()
	return &Bitmask[T]{
		register: mapping.Register,
		toString: mapping.FlagsToString,
	}
}

// Register names a flag. value is usually a single bit, but named combinations are allowed.
func (b *Bitmask[T]) Register(value T, name string) {
	b.register(value, name)
	b.known |= value
}

// Known returns the union of every registered flag
func (b *Bitmask[T]) Known() T {
	return b.known
}

// Explain returns the names of the flags set in value. Zero explains as NONE, and bits that no
// registered flag covers are reported as UNKNOWN(0x...).
func (b *Bitmask[T]) Explain(value T) string {
	if value == 0 {
		return "NONE"
	}

	var parts []string
	if known := value & b.known; known != 0 {
		parts = append(parts, b.toString(known))
	}
	if unknown := value &^ b.known; unknown != 0 {
		parts = append(parts, fmt.Sprintf("UNKNOWN(0x%x)", uint32(unknown)))
	}

	return strings.Join(parts, "|")
}
