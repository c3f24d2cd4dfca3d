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

// CreateCmd returns the card create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a card to a list",
		Long: `Create a card at the bottom of a list.

Examples:
  dragboard card create --board=3 --list=4 --title="Fix login"
  dragboard card create --board=3 --list=4 --title="Fix login" --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, _ := cmd.Flags().GetString("list")
			title, _ := cmd.Flags().GetString("title")
			listID := types.ListID(list)

			return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				boardID, err := c.BoardID(cmd)
				if err != nil {
					return err
				}
				if _, err := c.Apply(ctx, boardID, func(e *engine.Engine) (*reconcile.Request, error) {
					return e.CreateCard(listID, title)
				}); err != nil {
					return err
				}
				l, _, _ := c.App.Engine.Snapshot().List(listID)
				return f.Success(l.Cards[len(l.Cards)-1])
			})
		},
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("list", "", "List ID (required)")
	if err := cmd.MarkFlagRequired("list"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("title", "", "Card title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}
