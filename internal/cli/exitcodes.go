package cli

import (
	"errors"

	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/remote"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: network errors, rejected changes, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing flags, no board selected, no credential configured.
	ExitUsage = 2

	// ExitNotFound indicates a requested board, list or card was not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: responses that cannot be decoded.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: empty or oversized titles, ids that are still placeholders.
	ExitValidation = 5
)

// ExitCodeFor maps a command error onto an exit code
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoBoard), errors.Is(err, remote.ErrNoCredential):
		return ExitUsage
	case errors.Is(err, models.ErrCardNotFound), errors.Is(err, models.ErrListNotFound), remote.IsNotFound(err):
		return ExitNotFound
	case errors.Is(err, models.ErrEmptyTitle), errors.Is(err, models.ErrTitleTooLong), errors.Is(err, engine.ErrNotConfirmed):
		return ExitValidation
	default:
		return ExitError
	}
}

// errorCode is the machine-readable code reported in JSON error output
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrNoBoard):
		return "NO_BOARD"
	case errors.Is(err, remote.ErrNoCredential):
		return "NO_CREDENTIAL"
	}
	switch ExitCodeFor(err) {
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitValidation:
		return "VALIDATION_ERROR"
	}
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		return "API_ERROR"
	}
	return "ERROR"
}

// suggestionFor returns a hint for errors the user can fix
func suggestionFor(err error) string {
	switch {
	case errors.Is(err, ErrNoBoard):
		return "Pass --board, set DRAGBOARD_BOARD, or set api.board in the config file"
	case errors.Is(err, remote.ErrNoCredential):
		return "Set DRAGBOARD_TOKEN or api.token in the config file (dragboard token mints one for a local boardd)"
	}
	return ""
}
