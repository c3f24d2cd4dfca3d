package models

import "errors"

// Domain-specific errors shared by the store, the reorder algorithm and the API client
var (
	// ErrCardNotFound indicates a card id that does not resolve in the loaded board
	ErrCardNotFound = errors.New("card not found")

	// ErrListNotFound indicates a list id that does not resolve in the loaded board
	ErrListNotFound = errors.New("list not found")

	// ErrIndexOutOfRange indicates a structural contract violation (no resolvable index)
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEmptyTitle indicates a create or rename with a blank title
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong indicates a title longer than MaxTitleLength
	ErrTitleTooLong = errors.New("title cannot exceed 255 characters")

	// ErrDuplicateID indicates an attempt to insert an id that already exists on the board
	ErrDuplicateID = errors.New("id already exists on board")
)
