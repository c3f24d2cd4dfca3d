package list

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/cli"
	"github.com/thenoetrevino/dragboard/internal/drag"
	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// MoveCmd returns the list move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Reorder a list",
		Long: `Move a list the same way a drag and drop would: dropping it over
another list takes that list's position, dropping it on the board appends it.

Examples:
  # Put list 7 where list 4 is
  dragboard list move --board=3 --id=7 --over=4

  # Move list 4 to the end of the board
  dragboard list move --board=3 --id=4 --to-end
`,
		Args: cobra.NoArgs,
		RunE: runMove,
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("id", "", "List ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("over", "", "Drop over this list")
	cmd.Flags().Bool("to-end", false, "Drop on the board background (append)")
	cmd.MarkFlagsMutuallyExclusive("over", "to-end")
	cmd.MarkFlagsOneRequired("over", "to-end")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	over, _ := cmd.Flags().GetString("over")
	listID := types.ListID(id)

	target := drag.OverBoard()
	if over != "" {
		target = drag.OverList(types.ListID(over))
	}

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		boardID, err := c.BoardID(cmd)
		if err != nil {
			return err
		}
		res, err := c.Apply(ctx, boardID, func(e *engine.Engine) (*reconcile.Request, error) {
			snap := e.Snapshot()
			if _, _, ok := snap.List(listID); !ok {
				return nil, fmt.Errorf("list %s: %w", listID, models.ErrListNotFound)
			}
			if target.Kind == drag.TargetList {
				if _, _, ok := snap.List(target.ListID); !ok {
					return nil, fmt.Errorf("list %s: %w", target.ListID, models.ErrListNotFound)
				}
			}
			if !e.DragStartList(listID) {
				return nil, errors.New("list cannot be moved")
			}
			return e.DragEnd(target), nil
		})
		if err != nil {
			return err
		}

		list, _, _ := c.App.Engine.Snapshot().List(listID)
		if res == nil && !f.JSON && !f.Quiet {
			return f.Success("List is already in place")
		}
		return f.Success(list)
	})
}
