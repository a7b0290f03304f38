package layout

import "github.com/cockroachdb/errors"

// ErrInvalidLayout is returned when a set of fields cannot be laid out as a native record
var ErrInvalidLayout = errors.New("invalid layout")

// ErrUnknownField is returned when a field path does not name a field of a layout
var ErrUnknownField = errors.New("unknown field")
