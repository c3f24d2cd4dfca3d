package list

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/cli"
	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// RenameCmd returns the list rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a list",
		Long: `Change a list's title.

Examples:
  dragboard list rename --board=3 --id=4 --title="Doing"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			title, _ := cmd.Flags().GetString("title")
			listID := types.ListID(id)

			return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				boardID, err := c.BoardID(cmd)
				if err != nil {
					return err
				}
				if _, err := c.Apply(ctx, boardID, func(e *engine.Engine) (*reconcile.Request, error) {
					return e.RenameList(listID, title)
				}); err != nil {
					return err
				}
				list, _, _ := c.App.Engine.Snapshot().List(listID)
				return f.Success(list)
			})
		},
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("id", "", "List ID (required)")
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
