package card

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/cli"
	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// RenameCmd returns the card rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a card",
		Long: `Change a card's title.

Examples:
  dragboard card rename --board=3 --id=12 --title="Fix login redirect"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			title, _ := cmd.Flags().GetString("title")
			cardID := types.CardID(id)

			return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				boardID, err := c.BoardID(cmd)
				if err != nil {
					return err
				}
				if _, err := c.Apply(ctx, boardID, func(e *engine.Engine) (*reconcile.Request, error) {
					return e.RenameCard(cardID, title)
				}); err != nil {
					return err
				}
				card, _ := c.App.Engine.Snapshot().Card(cardID)
				return f.Success(card)
			})
		},
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("title", "", "New title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}
