package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/remote"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// EnvBoard selects the board when --board is not given
const EnvBoard = "DRAGBOARD_BOARD"

// ErrNoBoard indicates that no board was selected
var ErrNoBoard = errors.New("no board selected")

// AddOutputFlags adds the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// AddBoardFlag adds the --board flag
func AddBoardFlag(cmd *cobra.Command) {
	cmd.Flags().String("board", "", "Board ID (uses DRAGBOARD_BOARD or api.board if not specified)")
}

// Formatter builds the output formatter from the command's flags
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// Run resolves the CLI for cmd, calls fn and reports its error through the
// formatter. The error is returned, wrapped in a ReportedError, so the
// caller can pick an exit code without printing it twice.
func Run(cmd *cobra.Command, fn func(ctx context.Context, c *CLI, f *OutputFormatter) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := Formatter(cmd)

	cliInstance, err := GetCLIFromContext(ctx)
	if err == nil {
		defer func() {
			if err := cliInstance.Close(); err != nil {
				slog.Error("Error closing CLI", "error", err)
			}
		}()
		err = fn(ctx, cliInstance, formatter)
	}
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion(errorCode(err), err.Error(), suggestionFor(err)); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return &ReportedError{Err: err}
	}
	return nil
}

// ReportedError wraps an error the formatter has already printed
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// BoardID returns the board selected by flag, environment or config
func (c *CLI) BoardID(cmd *cobra.Command) (types.BoardID, error) {
	if id, _ := cmd.Flags().GetString("board"); strings.TrimSpace(id) != "" {
		return types.BoardID(strings.TrimSpace(id)), nil
	}
	if id := strings.TrimSpace(os.Getenv(EnvBoard)); id != "" {
		return types.BoardID(id), nil
	}
	if c.App.Config != nil && c.App.Config.API.Board != "" {
		return types.BoardID(c.App.Config.API.Board), nil
	}
	return "", ErrNoBoard
}

// Apply loads the board, builds one change with fn and waits for the server
// to settle it. A nil request means nothing changed and yields a nil result.
func (c *CLI) Apply(ctx context.Context, boardID types.BoardID, fn func(e *engine.Engine) (*reconcile.Request, error)) (*reconcile.Result, error) {
	e := c.App.Engine
	if err := e.Load(ctx, boardID); err != nil {
		return nil, err
	}

	req, err := fn(e)
	if err != nil || req == nil {
		return nil, err
	}

	runner := engine.NewRunner(ctx, e)
	defer runner.Close()
	runner.Go(req)

	results, err := runner.Drain(ctx)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%s: no result", req.Op())
	}

	res := results[0]
	switch res.Outcome {
	case reconcile.Failed:
		return &res, fmt.Errorf("%s failed: %w", res.Op, res.Err)
	case reconcile.Skipped:
		return &res, remote.ErrNoCredential
	}
	return &res, nil
}
