package view

import "github.com/cockroachdb/errors"

// ErrOutOfBounds is returned, or panicked with by At, when an index or range falls outside an
// array view
var ErrOutOfBounds = errors.New("out of bounds")

// ErrKindMismatch is panicked with when a field is accessed as a kind it was not declared as
var ErrKindMismatch = errors.New("field kind mismatch")

// ErrNullView is returned when an operation requires a view over real memory but was handed the
// null view
var ErrNullView = errors.New("null view")
