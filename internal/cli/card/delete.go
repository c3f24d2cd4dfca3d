package card

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/cli"
	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// DeleteCmd returns the card delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a card",
		Long: `Delete a card from its list.

Examples:
  dragboard card delete --board=3 --id=12
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			cardID := types.CardID(id)

			return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				boardID, err := c.BoardID(cmd)
				if err != nil {
					return err
				}
				if _, err := c.Apply(ctx, boardID, func(e *engine.Engine) (*reconcile.Request, error) {
					return e.DeleteCard(cardID)
				}); err != nil {
					return err
				}
				if f.JSON {
					return f.Success(map[string]any{"id": cardID, "deleted": true})
				}
				if f.Quiet {
					return nil
				}
				return f.Success(fmt.Sprintf("Deleted card %s", cardID))
			})
		},
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}
