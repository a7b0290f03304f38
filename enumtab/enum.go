package enumtab

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/exp/constraints"
)

// Enum maps the values of a native enum to their canonical names. Tables are filled in during
// package initialization and read-only afterward.
type Enum[T constraints.Integer] struct {
	names map[T]string
}

// NewEnum creates an Enum from a table of names. The table is copied.
func NewEnum[T constraints.Integer](names map[T]string) *Enum[T] {
	e := &Enum[T]{names: make(map[T]string, len(names))}
	for value, name := range names {
		e.Register(value, name)
	}
	return e
}

// Register adds a value's canonical name. Registering a value twice panics.
func (e *Enum[T]) Register(value T, name string) {
	if existing, ok := e.names[value]; ok {
		panic(fmt.Sprintf("enum value %d is already registered as %s", value, existing))
	}
	e.names[value] = name
}

// Name returns the canonical name of value, or UNKNOWN(value) for values without one
func (e *Enum[T]) Name(value T) string {
	name, ok := e.names[value]
	if !ok {
		return fmt.Sprintf("UNKNOWN(%d)", value)
	}
	return name
}

// IsKnown returns true if value has a canonical name
func (e *Enum[T]) IsKnown(value T) bool {
	_, ok := e.names[value]
	return ok
}

// Values returns every registered value in ascending order
func (e *Enum[T]) Values() []T {
	return slices.Sorted(maps.Keys(e.names))
}

// Len returns the number of registered values
func (e *Enum[T]) Len() int {
	return len(e.names)
}
