package view

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
)

// Next follows the record's extension chain link. The returned view uses the chain's base
// layout; use its Tag to decide which layout to reinterpret it as with UnsafeAs. It returns false
// at the end of the chain or if the layout has no chain field.
func (s Struct) Next() (Struct, bool) {
	chain, ok := s.layout.ChainField()
	if !ok {
		return Struct{}, false
	}
	return s.deref(chain)
}

// SetNext links next after this record in its extension chain. The null view ends the chain.
// The link does not keep next alive.
func (s Struct) SetNext(next Struct) {
	chain, ok := s.layout.ChainField()
	if !ok {
		panic(errors.Wrapf(ErrKindMismatch, "%s has no chain field", s.layout.Name()))
	}
	storeUint(s.at(chain), chain.Size, uint64(next.Address()))
}

// Chain returns a sequence over every record linked after s, in order. The records are viewed
// through the chain's base layout. The sequence ends at the first link back to a record it has
// already visited, so a looped chain yields each record once.
func Chain(s Struct) iter.Seq[Struct] {
	return func(yield func(Struct) bool) {
		visited := swiss.NewMap[uintptr, struct{}](8)
		visited.Put(s.Address(), struct{}{})

		current := s
		for {
			next, ok := current.Next()
			if !ok {
				return
			}
			if _, seen := visited.Get(next.Address()); seen {
				return
			}
			if !yield(next) {
				return
			}
			visited.Put(next.Address(), struct{}{})
			current = next
		}
	}
}

// FindInChain returns the first record linked after s whose tag has the given value
func FindInChain(s Struct, tag uint64) (Struct, bool) {
	for next := range Chain(s) {
		field, ok := next.layout.TagField()
		if !ok {
			return Struct{}, false
		}
		if loadUint(next.at(field), field.Size) == truncate(tag, field.Size) {
			return next, true
		}
	}

	return Struct{}, false
}

func truncate(value uint64, size int) uint64 {
	if size >= 8 {
		return value
	}
	return value & (1<<(8*size) - 1)
}
