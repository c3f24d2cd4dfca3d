package board

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/cli"
)

// ListCmd returns the board list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards",
		Long: `List the boards visible to your credential.

Examples:
  # Human-readable list
  dragboard board list

  # JSON output for agents
  dragboard board list --json

  # Quiet mode (one ID per line)
  dragboard board list --quiet
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Run(cmd, runList)
		},
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
	boards, err := c.App.Client.ListBoards(ctx)
	if err != nil {
		return err
	}
	return f.Success(boards)
}
