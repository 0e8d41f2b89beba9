package physics

import "errors"

var (
	// ErrNotFound is returned when a body id or name is not known to the store.
	ErrNotFound = errors.New("body not found")
	// ErrInvalidSpec is returned when a body specification violates a body invariant.
	ErrInvalidSpec = errors.New("invalid body spec")
)
