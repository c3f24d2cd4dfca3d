package reorder

import "errors"

var (
	// ErrNoTarget indicates a release that does not resolve to a droppable container
	ErrNoTarget = errors.New("drop has no valid target")

	// ErrPlaceholder indicates a drag of, or onto, an entity the server has not confirmed yet
	ErrPlaceholder = errors.New("entity is not confirmed yet")

	// ErrKindMismatch indicates a plan requested for the wrong kind of entity
	ErrKindMismatch = errors.New("drag entity kind mismatch")
)
