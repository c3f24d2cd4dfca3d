package list

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

// DeleteCmd returns the list delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a list and its cards",
		Long: `Delete a list. Its cards are deleted with it.

Examples:
  dragboard list delete --board=3 --id=4
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			listID := types.ListID(id)

			return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				boardID, err := c.BoardID(cmd)
				if err != nil {
					return err
				}
				if _, err := c.Apply(ctx, boardID, func(e *engine.Engine) (*reconcile.Request, error) {
					return e.DeleteList(listID)
				}); err != nil {
					return err
				}
				if f.JSON {
					return f.Success(map[string]any{"id": listID, "deleted": true})
				}
				if f.Quiet {
					return nil
				}
				return f.Success(fmt.Sprintf("Deleted list %s", listID))
			})
		},
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("id", "", "List ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}
