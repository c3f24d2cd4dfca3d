package engine

import "errors"

var (
	// ErrDragInProgress indicates a board load or close attempted mid-drag
	ErrDragInProgress = errors.New("cannot change boards while dragging")

	// ErrNoBoard indicates an operation that needs an open board
	ErrNoBoard = errors.New("no board is open")

	// ErrNotConfirmed indicates an operation on an entity the server has not confirmed yet
	ErrNotConfirmed = errors.New("entity is still being created")
)
