package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/thenoetrevino/dragboard/internal/app"
	"github.com/thenoetrevino/dragboard/internal/cli"
	"github.com/thenoetrevino/dragboard/internal/config"
	"github.com/thenoetrevino/dragboard/internal/logging"
	"github.com/thenoetrevino/dragboard/internal/tui"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// Launch starts the TUI on boardArg, or on the board named by the
// environment or config when boardArg is empty
func Launch(boardArg string) error {
	// Initialize logging to file before anything else
	if err := logging.Init("dragboard"); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	boardID, err := ResolveBoard(boardArg, cfg)
	if err != nil {
		return err
	}

	application, err := app.New(cfg, app.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing app", "error", err)
		}
	}()

	slog.Info("opening board", "board_id", boardID, "api", cfg.API.BaseURL)
	if err := tui.Run(ctx, tui.New(ctx, application.Engine, boardID, cfg)); err != nil {
		return err
	}
	if ctx.Err() != nil {
		slog.Info("shutdown signal received, unsaved changes discarded")
	}
	return nil
}

// ResolveBoard picks the board to open: the argument first, then the
// DRAGBOARD_BOARD environment variable, then api.board from the config
func ResolveBoard(arg string, cfg *config.Config) (types.BoardID, error) {
	if id := strings.TrimSpace(arg); id != "" {
		return types.BoardID(id), nil
	}
	if id := strings.TrimSpace(os.Getenv(cli.EnvBoard)); id != "" {
		return types.BoardID(id), nil
	}
	if cfg != nil && cfg.API.Board != "" {
		return types.BoardID(cfg.API.Board), nil
	}
	return "", cli.ErrNoBoard
}
