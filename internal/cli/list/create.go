package list

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/cli"
	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
)

// CreateCmd returns the list create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a list to a board",
		Long: `Create a list at the end of a board.

Examples:
  dragboard list create --board=3 --title="Review"
  dragboard list create --board=3 --title="Review" --quiet
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				boardID, err := c.BoardID(cmd)
				if err != nil {
					return err
				}
				_, err = c.Apply(ctx, boardID, func(e *engine.Engine) (*reconcile.Request, error) {
					return e.CreateList(title)
				})
				if err != nil {
					return err
				}
				snap := c.App.Engine.Snapshot()
				return f.Success(snap.ListAt(snap.ListCount() - 1))
			})
		},
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("title", "", "List title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}
