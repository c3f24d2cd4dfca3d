package card

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

// MoveCmd returns the card move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a card within or across lists",
		Long: `Move a card the same way a drag and drop would: dropping it over
another card takes that card's position, dropping it over a list puts it
at the end of that list.

Examples:
  # Put card 12 where card 9 is
  dragboard card move --board=3 --id=12 --over-card=9

  # Move card 12 to the bottom of list 5
  dragboard card move --board=3 --id=12 --over-list=5
`,
		Args: cobra.NoArgs,
		RunE: runMove,
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("over-card", "", "Drop over this card")
	cmd.Flags().String("over-list", "", "Drop over this list")
	cmd.MarkFlagsMutuallyExclusive("over-card", "over-list")
	cmd.MarkFlagsOneRequired("over-card", "over-list")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	overCard, _ := cmd.Flags().GetString("over-card")
	overList, _ := cmd.Flags().GetString("over-list")
	cardID := types.CardID(id)

	target := drag.OverList(types.ListID(overList))
	if overCard != "" {
		target = drag.OverCard(types.CardID(overCard))
	}

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		boardID, err := c.BoardID(cmd)
		if err != nil {
			return err
		}
		res, err := c.Apply(ctx, boardID, func(e *engine.Engine) (*reconcile.Request, error) {
			if err := resolveTarget(e, cardID, target); err != nil {
				return nil, err
			}
			if !e.DragStartCard(cardID) {
				return nil, errors.New("card cannot be moved")
			}
			return e.DragEnd(target), nil
		})
		if err != nil {
			return err
		}

		card, _ := c.App.Engine.Snapshot().Card(cardID)
		if res == nil && !f.JSON && !f.Quiet {
			return f.Success("Card is already in place")
		}
		return f.Success(card)
	})
}

func resolveTarget(e *engine.Engine, cardID types.CardID, target drag.Target) error {
	snap := e.Snapshot()
	if _, ok := snap.Card(cardID); !ok {
		return fmt.Errorf("card %s: %w", cardID, models.ErrCardNotFound)
	}
	switch target.Kind {
	case drag.TargetCard:
		if _, ok := snap.Card(target.CardID); !ok {
			return fmt.Errorf("card %s: %w", target.CardID, models.ErrCardNotFound)
		}
	case drag.TargetList:
		if _, _, ok := snap.List(target.ListID); !ok {
			return fmt.Errorf("list %s: %w", target.ListID, models.ErrListNotFound)
		}
	}
	return nil
}
