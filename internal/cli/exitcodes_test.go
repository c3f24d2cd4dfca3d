package cli

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/remote"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		tag  string
	}{
		{"success", nil, ExitSuccess, ""},
		{"no board", ErrNoBoard, ExitUsage, "NO_BOARD"},
		{"no credential", fmt.Errorf("create: %w", remote.ErrNoCredential), ExitUsage, "NO_CREDENTIAL"},
		{"card not found", fmt.Errorf("card 9: %w", models.ErrCardNotFound), ExitNotFound, "NOT_FOUND"},
		{"list not found", fmt.Errorf("list 9: %w", models.ErrListNotFound), ExitNotFound, "NOT_FOUND"},
		{"remote not found", &remote.APIError{StatusCode: http.StatusNotFound, Method: "GET", Path: "/api/boards/9/lists"}, ExitNotFound, "NOT_FOUND"},
		{"empty title", models.ErrEmptyTitle, ExitValidation, "VALIDATION_ERROR"},
		{"placeholder", engine.ErrNotConfirmed, ExitValidation, "VALIDATION_ERROR"},
		{"server error", &remote.APIError{StatusCode: http.StatusInternalServerError, Method: "PATCH", Path: "/api/cards/1"}, ExitError, "API_ERROR"},
		{"other", errors.New("boom"), ExitError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ExitCodeFor(tt.err))
			if tt.err != nil {
				assert.Equal(t, tt.tag, errorCode(tt.err))
			}
		})
	}
}

func TestSuggestionFor(t *testing.T) {
	assert.Contains(t, suggestionFor(ErrNoBoard), "--board")
	assert.Contains(t, suggestionFor(remote.ErrNoCredential), "DRAGBOARD_TOKEN")
	assert.Empty(t, suggestionFor(errors.New("boom")))
}
