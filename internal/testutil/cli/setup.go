package cli

import (
	"io"
	"log/slog"
	"testing"

	"github.com/thenoetrevino/dragboard/internal/app"
	"github.com/thenoetrevino/dragboard/internal/config"
	"github.com/thenoetrevino/dragboard/internal/testutil"
)

// SetupCLITest starts a test backend and returns it together with an App
// pointed at it. This lives in its own package so tests of the packages
// testutil depends on do not pick up the CLI.
func SetupCLITest(t *testing.T) (*testutil.Backend, *app.App) {
	t.Helper()
	b := testutil.StartBackend(t)

	cfg := config.Default()
	cfg.API.BaseURL = b.URL
	cfg.API.Token = b.Token

	appInstance, err := app.New(cfg, app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	t.Cleanup(func() { _ = appInstance.Close() })

	return b, appInstance
}
