package backend

import "errors"

var (
	// ErrNotFound indicates an entity that does not exist or is not owned by the caller
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed request body or id
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a missing or invalid bearer token
	ErrUnauthorized = errors.New("unauthorized")
)
