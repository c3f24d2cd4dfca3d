package board

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/cli"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a board's lists and cards",
		Long: `Show the lists of a board in order, each with its cards.

Examples:
  dragboard board show --board=3
  DRAGBOARD_BOARD=3 dragboard board show --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				boardID, err := c.BoardID(cmd)
				if err != nil {
					return err
				}
				if err := c.App.Engine.Load(ctx, boardID); err != nil {
					return err
				}
				return f.Success(c.App.Engine.Snapshot().Lists())
			})
		},
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}
