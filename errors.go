package pathfx

import "errors"

var (
	// ErrEmptyPath is returned when a path with no segments is measured.
	ErrEmptyPath = errors.New("pathfx: path has no segments")

	// ErrInvalidParameter is returned for out-of-range effect parameters:
	// a non-positive stamp advance, a negative corner radius, a negative
	// dash interval, or a missing stamp shape.
	ErrInvalidParameter = errors.New("pathfx: invalid parameter")

	// ErrIncompatibleChain is returned when an effect that produces stamps
	// is used where a path is required.
	ErrIncompatibleChain = errors.New("pathfx: effect does not produce a path")
)
