package drag

import "errors"

var (
	// ErrAlreadyDragging indicates a drag start while another session is active
	ErrAlreadyDragging = errors.New("a drag session is already active")

	// ErrNotDragging indicates a hover or end event without an active session
	ErrNotDragging = errors.New("no drag session is active")

	// ErrInvalidEntity indicates a drag start for an entity without an id
	ErrInvalidEntity = errors.New("drag entity has no id")
)
